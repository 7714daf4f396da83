// Package config loads `.strfmt` documents (JSON or YAML) describing the
// locale, day and month names, logging preferences and default arguments used
// by the command line tools, and turns them into template engine options.
package config
