package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"rental-pricing-backend/internal/domain"
)

// rangeLabelKey is the message key of the rental period label, and its English text.
const rangeLabelKey = "%[1]s to %[2]s"

// LabelOptions carries the timezone and language a label is rendered for.
type LabelOptions struct {
	Location *time.Location
	Language language.Tag
}

func (o LabelOptions) location() *time.Location {
	if o.Location == nil {
		return time.UTC
	}
	return o.Location
}

// Formatter renders dates and translates label templates.
type Formatter interface {
	FormatDateTime(t time.Time, opts LabelOptions) string
	FormatTime(t time.Time, opts LabelOptions) string
	Translate(opts LabelOptions, key string, args ...any) string
}

type layouts struct {
	dateTime string
	time     string
}

var (
	englishLayouts = layouts{dateTime: "Jan 2, 2006, 3:04:05 PM", time: "3:04:05 PM"}
	numericLayouts = layouts{dateTime: "02/01/2006 15:04:05", time: "15:04:05"}
)

type textFormatter struct {
	catalog *catalog.Builder
}

// NewFormatter returns a Formatter backed by a message catalog with English,
// French and Arabic labels. Other languages fall back to English text.
func NewFormatter() Formatter {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	_ = b.SetString(language.English, rangeLabelKey, "%[1]s to %[2]s")
	_ = b.SetString(language.French, rangeLabelKey, "%[1]s au %[2]s")
	_ = b.SetString(language.Arabic, rangeLabelKey, "من %[1]s إلى %[2]s")
	return &textFormatter{catalog: b}
}

func (f *textFormatter) layoutsFor(tag language.Tag) layouts {
	base, _ := tag.Base()
	if base.String() == "en" || tag == language.Und {
		return englishLayouts
	}
	return numericLayouts
}

func (f *textFormatter) FormatDateTime(t time.Time, opts LabelOptions) string {
	return t.In(opts.location()).Format(f.layoutsFor(opts.Language).dateTime)
}

func (f *textFormatter) FormatTime(t time.Time, opts LabelOptions) string {
	return t.In(opts.location()).Format(f.layoutsFor(opts.Language).time)
}

func (f *textFormatter) Translate(opts LabelOptions, key string, args ...any) string {
	tag := opts.Language
	if tag == language.Und {
		tag = language.English
	}
	p := message.NewPrinter(tag, message.Catalog(f.catalog))
	return p.Sprintf(key, args...)
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// FormatRangeLabel renders the rental period of a line. When both ends fall on
// the same calendar day in opts.Location the end only shows its time.
func FormatRangeLabel(f Formatter, start, end time.Time, opts LabelOptions) string {
	var endPart string
	if sameDay(start, end, opts.location()) {
		endPart = f.FormatTime(end, opts)
	} else {
		endPart = f.FormatDateTime(end, opts)
	}
	return f.Translate(opts, rangeLabelKey, f.FormatDateTime(start, opts), endPart)
}

// ReplaceLastLine swaps the last line of a multi-line description for label.
func ReplaceLastLine(description, label string) string {
	lines := strings.Split(description, "\n")
	lines[len(lines)-1] = label
	return strings.Join(lines, "\n")
}

// LabelOptionsFor resolves the label timezone and language of an order,
// falling back to the given defaults when the order leaves them empty.
func LabelOptionsFor(order *domain.Order, defaultTimezone, defaultLanguage string) (LabelOptions, error) {
	tz, lang := defaultTimezone, defaultLanguage
	if order != nil && order.Timezone != "" {
		tz = order.Timezone
	}
	if order != nil && order.Language != "" {
		lang = order.Language
	}

	// An invalid timezone or language falls back on its own; the other
	// setting still applies.
	opts := LabelOptions{Location: time.UTC, Language: language.English}
	var errs []error
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err != nil {
			errs = append(errs, fmt.Errorf("invalid timezone %q: %w", tz, err))
		} else {
			opts.Location = loc
		}
	}
	if lang != "" {
		if tag, err := language.Parse(lang); err != nil {
			errs = append(errs, fmt.Errorf("invalid language %q: %w", lang, err))
		} else {
			opts.Language = tag
		}
	}
	return opts, errors.Join(errs...)
}
