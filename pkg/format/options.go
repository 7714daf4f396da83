package format

import "golang.org/x/text/language"

// Options tune the renderers that depend on conventions outside the
// specifier: the locale used by the `n` type and the names used by the time
// formatter.
type Options struct {
	Locale    language.Tag
	TimeNames TimeNames
}

// Option mutates Options.
type Option func(*Options)

// WithLocale selects the locale for digit grouping under the `n` type.
func WithLocale(tag language.Tag) Option {
	return func(o *Options) {
		o.Locale = tag
	}
}

// WithTimeNames replaces the day and month names used for time values.
func WithTimeNames(names TimeNames) Option {
	return func(o *Options) {
		o.TimeNames = names
	}
}

// NewOptions applies opts over the defaults (English, en-US grouping).
func NewOptions(opts ...Option) Options {
	o := Options{
		Locale:    language.AmericanEnglish,
		TimeNames: DefaultTimeNames(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Locale == language.Und {
		o.Locale = language.AmericanEnglish
	}
	return o
}
