package article

import (
	"fmt"
	"time"

	"github.com/eykd/fmx/internal/contenttype"
	"github.com/eykd/fmx/internal/datefmt"
	"github.com/eykd/fmx/internal/domain"
	"github.com/eykd/fmx/internal/frontmatter"
)

// SettingDateFormat names the global date format setting.
const SettingDateFormat = "date_format"

// FieldDateFormatSetting names the date format setting of a content type
// field.
func FieldDateFormatSetting(contentType, field string) string {
	return fmt.Sprintf("content_types[%s].fields[%s].date_format", contentType, field)
}

// formatDate renders now for field, preferring its own format over the
// global one. Errors are *domain.ConfigError naming the setting used.
func (m *Mutator) formatDate(def contenttype.Definition, field string, now time.Time) (string, error) {
	f, _ := def.Field(field)

	setting := SettingDateFormat
	if f.DateFormat != "" {
		setting = FieldDateFormatSetting(def.Name, f.Name)
	}

	s, err := datefmt.Format(now, f.DateFormat, m.cfg.DateFormat)
	if err != nil {
		return "", domain.NewConfigError(setting, err)
	}
	return s, nil
}

// UpdateDate writes the current date to field. Without force, documents
// lacking the field are left alone.
func (m *Mutator) UpdateDate(doc *frontmatter.Document, relPath, field string, force bool) *Change {
	if !applicable(doc) || field == "" {
		return nil
	}
	if !force && !doc.Metadata.Has(field) {
		return nil
	}

	v, err := m.formatDate(m.ContentType(doc, relPath), field, m.now())
	if err != nil {
		m.report(err, relPath)
		return nil
	}

	meta := doc.Metadata.Clone()
	meta.Set(field, v)
	return m.commit(doc, meta, relPath)
}

// SetDate writes the current date to every publish date field of the
// content type, or to "date" when none is flagged.
func (m *Mutator) SetDate(doc *frontmatter.Document, relPath string) *Change {
	if !applicable(doc) {
		return nil
	}

	def := m.ContentType(doc, relPath)
	fields := def.PublishDateFields()
	if len(fields) == 0 {
		fields = []contenttype.Field{{Name: FieldDate, Type: contenttype.KindDateTime}}
	}

	now := m.now()
	meta := doc.Metadata.Clone()
	var firstErr error
	for _, f := range fields {
		v, err := m.formatDate(def, f.Name, now)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		meta.Set(f.Name, v)
	}
	if firstErr != nil {
		m.report(firstErr, relPath)
	}
	if !meta.Dirty() {
		return nil
	}
	return m.commit(doc, meta, relPath)
}

// SetLastModified writes the current date to the modified date field, or
// "lastmod" when none is flagged. Documents with empty front matter are
// left alone.
func (m *Mutator) SetLastModified(doc *frontmatter.Document, relPath string) *Change {
	if !applicable(doc) || doc.Metadata.Len() == 0 {
		return nil
	}

	field := FieldLastMod
	if f, ok := m.ContentType(doc, relPath).ModifiedDateField(); ok {
		field = f.Name
	}
	return m.UpdateDate(doc, relPath, field, true)
}

// WillSave is the pre-save hook. When automatic date updates are enabled
// and relPath lies in a content folder, it returns the last-modified
// change the host must apply before the save completes.
func (m *Mutator) WillSave(doc *frontmatter.Document, relPath string) *Change {
	if !m.cfg.AutoUpdateDate {
		return nil
	}
	if _, ok := m.cfg.ContentFolder(relPath); !ok {
		return nil
	}
	return m.SetLastModified(doc, relPath)
}

// notifyInfo sends an informational notice.
func (m *Mutator) notifyInfo(msg, relPath string) {
	m.notify.Notify(domain.Notice{Severity: domain.SeverityInfo, Message: msg, Path: relPath})
}
