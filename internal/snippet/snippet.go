// Package snippet finds and writes snippet blocks: content wrapped in a
// pair of HTML comment sentinels whose opening line carries a JSON
// payload describing how the block was produced.
package snippet

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/eykd/fmx/internal/domain"
)

// Sentinel markers. The wire format must stay byte-for-byte compatible
// with documents written by other tools.
const (
	StartMarker = "FM:Snippet:Start"
	EndMarker   = "FM:Snippet:End"

	startPrefix = "<!-- " + StartMarker + " data:"
	startSuffix = " -->"
	endLine     = "<!-- " + EndMarker + " -->"
)

// ErrMalformedPayload is returned when an opening sentinel carries data
// that does not decode.
var ErrMalformedPayload = errors.New("malformed snippet payload")

// Info is the payload stored on the opening sentinel line.
type Info struct {
	ID     string `json:"id"`
	Fields []any  `json:"fields"`
}

// Match is a snippet block enclosing a selection.
type Match struct {
	Range domain.Range `json:"range"`
	Info  *Info        `json:"info,omitempty"`
}

// Locate reports the snippet block enclosing the start of sel. Lines are
// the document split on "\n". A nil Match means the selection is not
// inside a block and a new snippet goes at the cursor.
//
// The three scans deliberately compare differently: the end sentinel may
// sit on the selection line, a following start sentinel must be strictly
// after it, and the enclosing start sentinel may sit on it.
func Locate(lines []string, sel domain.Range) (*Match, error) {
	line := sel.Start.Line

	endAfter := -1
	for i, l := range lines {
		if i >= line && strings.Contains(l, EndMarker) {
			endAfter = i
			break
		}
	}

	startAfter := -1
	for i, l := range lines {
		if i > line && strings.Contains(l, StartMarker) {
			startAfter = i
			break
		}
	}

	startBefore := -1
	for i := min(line, len(lines)-1); i >= 0; i-- {
		if strings.Contains(lines[i], StartMarker) {
			startBefore = i
			break
		}
	}

	inside := endAfter >= 0 &&
		(startAfter == -1 || startAfter > endAfter) &&
		startBefore >= 0
	if !inside {
		return nil, nil
	}

	info, err := decodeInfo(lines[startBefore])
	if err != nil {
		return nil, fmt.Errorf("snippet at line %d: %w", startBefore+1, err)
	}

	return &Match{
		Range: domain.Range{
			Start: domain.Position{Line: startBefore},
			End:   domain.Position{Line: endAfter, Character: domain.LineLength(lines[endAfter])},
		},
		Info: info,
	}, nil
}

func decodeInfo(line string) (*Info, error) {
	data := strings.Replace(line, startPrefix, "", 1)
	data = strings.Replace(data, startSuffix, "", 1)
	data = strings.ReplaceAll(data, "'", `"`)

	var info Info
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return &info, nil
}

// EncodeInfo renders the opening sentinel line for info. Single quotes in
// values are escaped so the quote swap stays reversible.
func EncodeInfo(info Info) (string, error) {
	if info.Fields == nil {
		info.Fields = []any{}
	}
	b, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("encoding snippet payload: %w", err)
	}
	data := strings.ReplaceAll(string(b), "'", `\u0027`)
	data = strings.ReplaceAll(data, `"`, "'")
	return startPrefix + data + startSuffix, nil
}

// Wrap surrounds body with the sentinel lines.
func Wrap(info Info, body string) (string, error) {
	open, err := EncodeInfo(info)
	if err != nil {
		return "", err
	}
	return open + "\n" + body + "\n" + endLine, nil
}

// Insert returns the edit placing text into the document: over the
// located block when there is one, else over the selection, which for an
// empty selection is an insert at the cursor.
func Insert(match *Match, sel domain.Range, text string) domain.TextEdit {
	if match != nil {
		return domain.TextEdit{Range: match.Range, NewText: text}
	}
	return domain.TextEdit{Range: sel, NewText: text}
}
