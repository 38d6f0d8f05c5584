package cmd

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/eykd/fmx/internal/article"
	"github.com/eykd/fmx/internal/domain"
	"github.com/eykd/fmx/internal/snippet"
)

type (
	// PathInput names a document.
	PathInput struct {
		Path   string `json:"path" jsonschema:"Document path, absolute or relative to the working directory"`
		DryRun bool   `json:"dryRun,omitempty" jsonschema:"Compute the change without writing the file"`
	}

	// UpdateDateInput contains parameters for update_date.
	UpdateDateInput struct {
		Path   string `json:"path" jsonschema:"Document path, absolute or relative to the working directory"`
		Field  string `json:"field,omitempty" jsonschema:"Date field to set; empty sets every publish date field"`
		Force  bool   `json:"force,omitempty" jsonschema:"Add the field when the document lacks it"`
		DryRun bool   `json:"dryRun,omitempty" jsonschema:"Compute the change without writing the file"`
	}

	// TaxonomyInput contains parameters for taxonomy_options.
	TaxonomyInput struct {
		Path string `json:"path" jsonschema:"Document path, absolute or relative to the working directory"`
		Kind string `json:"kind" jsonschema:"tags, categories, or a custom taxonomy id"`
	}

	// TaxonomyOutput lists picker entries.
	TaxonomyOutput struct {
		Options []article.Option `json:"options"`
	}

	// SetTaxonomyInput contains parameters for set_taxonomy.
	SetTaxonomyInput struct {
		Path     string   `json:"path" jsonschema:"Document path, absolute or relative to the working directory"`
		Kind     string   `json:"kind" jsonschema:"tags, categories, or a custom taxonomy id"`
		Values   []string `json:"values" jsonschema:"The complete new list of values"`
		Remember bool     `json:"remember,omitempty" jsonschema:"Save unknown values to the config vocabulary"`
		DryRun   bool     `json:"dryRun,omitempty" jsonschema:"Compute the change without writing the file"`
	}

	// LocateSnippetInput contains parameters for locate_snippet.
	LocateSnippetInput struct {
		Path      string `json:"path" jsonschema:"Document path, absolute or relative to the working directory"`
		Line      int    `json:"line" jsonschema:"Zero-based cursor line"`
		Character int    `json:"character,omitempty" jsonschema:"Zero-based cursor character in UTF-16 units"`
	}

	// LocateSnippetOutput holds the located block, if any.
	LocateSnippetOutput struct {
		Found bool           `json:"found"`
		Match *snippet.Match `json:"match,omitempty"`
	}

	// SlugFromPathOutput holds a path-derived slug.
	SlugFromPathOutput struct {
		Slug string `json:"slug"`
		OK   bool   `json:"ok"`
	}
)

// NewServeCmd creates the serve command, which exposes the workspace
// operations as MCP tools over stdio.
func NewServeCmd(ws Workspace) *cobra.Command {
	return &cobra.Command{
		Use:          "serve",
		Short:        "Serve front matter operations to MCP clients over stdio",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ws == nil {
				return ErrNotInProject
			}
			server := NewMCPServer(ws, cmd.Root().Version)
			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("error running server: %w", err)
			}
			return nil
		},
	}
}

// NewMCPServer returns an MCP server with the workspace tools registered.
func NewMCPServer(ws Workspace, version string) *mcp.Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "fmx",
		Version: version,
	}, nil)

	registerTools(server, &toolHandlers{ws: ws})
	return server
}

func registerTools(server *mcp.Server, h *toolHandlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_draft",
		Description: "Flip the draft flag in a document's front matter. An absent flag becomes true.",
	}, h.toggleDraft)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_date",
		Description: "Set a date field to the current date using the configured date format. Without a field every publish date field is set.",
	}, h.updateDate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_slug",
		Description: "Derive the slug from the title, fill fields that default to {{slug}}, and rename the file when configured.",
	}, h.updateSlug)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "taxonomy_options",
		Description: "List the values of a taxonomy that can be picked: current values first, then the configured vocabulary.",
	}, h.taxonomyOptions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_taxonomy",
		Description: "Replace a taxonomy field (tags, categories, or custom) with exactly the given values.",
	}, h.setTaxonomy)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "locate_snippet",
		Description: "Find the snippet block enclosing a cursor line and decode its recorded fields.",
	}, h.locateSnippet)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "slug_from_path",
		Description: "Derive a slug from a document path: the folder name for index files, else the file name.",
	}, h.slugFromPath)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "presave",
		Description: "Run the pre-save hook: refresh the modified date of documents inside a content folder.",
	}, h.presave)
}

// toolHandlers adapts Workspace methods to MCP tool handlers.
type toolHandlers struct {
	ws Workspace
}

// toolError marks the result as failed.
func toolError() *mcp.CallToolResult {
	return &mcp.CallToolResult{IsError: true}
}

func (h *toolHandlers) toggleDraft(ctx context.Context, req *mcp.CallToolRequest, in PathInput) (*mcp.CallToolResult, DocumentResult, error) {
	r, err := h.ws.ToggleDraft(ctx, in.Path, !in.DryRun)
	if err != nil {
		return toolError(), DocumentResult{}, err
	}
	return nil, *r, nil
}

func (h *toolHandlers) updateDate(ctx context.Context, req *mcp.CallToolRequest, in UpdateDateInput) (*mcp.CallToolResult, DocumentResult, error) {
	var r *DocumentResult
	var err error
	if in.Field == "" {
		r, err = h.ws.SetDate(ctx, in.Path, !in.DryRun)
	} else {
		r, err = h.ws.UpdateDate(ctx, in.Path, in.Field, in.Force, !in.DryRun)
	}
	if err != nil {
		return toolError(), DocumentResult{}, err
	}
	return nil, *r, nil
}

func (h *toolHandlers) updateSlug(ctx context.Context, req *mcp.CallToolRequest, in PathInput) (*mcp.CallToolResult, SlugResult, error) {
	r, err := h.ws.UpdateSlug(ctx, in.Path, !in.DryRun)
	if err != nil {
		return toolError(), SlugResult{}, err
	}
	return nil, *r, nil
}

func (h *toolHandlers) taxonomyOptions(ctx context.Context, req *mcp.CallToolRequest, in TaxonomyInput) (*mcp.CallToolResult, TaxonomyOutput, error) {
	opts, err := h.ws.TaxonomyOptions(ctx, in.Path, in.Kind)
	if err != nil {
		return toolError(), TaxonomyOutput{}, err
	}
	if opts == nil {
		opts = []article.Option{}
	}
	return nil, TaxonomyOutput{Options: opts}, nil
}

func (h *toolHandlers) setTaxonomy(ctx context.Context, req *mcp.CallToolRequest, in SetTaxonomyInput) (*mcp.CallToolResult, TaxonomyResult, error) {
	r, err := h.ws.SetTaxonomy(ctx, in.Path, in.Kind, in.Values, in.Remember, !in.DryRun)
	if err != nil {
		return toolError(), TaxonomyResult{}, err
	}
	return nil, *r, nil
}

func (h *toolHandlers) locateSnippet(ctx context.Context, req *mcp.CallToolRequest, in LocateSnippetInput) (*mcp.CallToolResult, LocateSnippetOutput, error) {
	pos := domain.Position{Line: in.Line, Character: in.Character}
	m, err := h.ws.LocateSnippet(ctx, in.Path, domain.Range{Start: pos, End: pos})
	if err != nil {
		return toolError(), LocateSnippetOutput{}, err
	}
	return nil, LocateSnippetOutput{Found: m != nil, Match: m}, nil
}

func (h *toolHandlers) slugFromPath(ctx context.Context, req *mcp.CallToolRequest, in PathInput) (*mcp.CallToolResult, SlugFromPathOutput, error) {
	s, ok, err := h.ws.SlugFromPath(ctx, in.Path)
	if err != nil {
		return toolError(), SlugFromPathOutput{}, err
	}
	return nil, SlugFromPathOutput{Slug: s, OK: ok}, nil
}

func (h *toolHandlers) presave(ctx context.Context, req *mcp.CallToolRequest, in PathInput) (*mcp.CallToolResult, DocumentResult, error) {
	r, err := h.ws.WillSave(ctx, in.Path, !in.DryRun)
	if err != nil {
		return toolError(), DocumentResult{}, err
	}
	return nil, *r, nil
}
