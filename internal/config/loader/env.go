package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "TEXTSEL_"

// EnvLoader loads configuration from environment variables. Mapped
// variables go to their configured path; other prefixed variables map
// TEXTSEL_SECTION_SOME_NAME to section.someName.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader creates an environment loader with the default mapping.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{
		prefix:  EnvPrefix,
		mapping: defaultEnvMapping(),
		environ: os.Environ,
	}
}

// NewEnvLoaderFrom reads variables from a fixed KEY=VALUE list.
func NewEnvLoaderFrom(env []string) *EnvLoader {
	l := NewEnvLoader()
	l.environ = func() []string { return env }
	return l
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		"TEXTSEL_LOG_LEVEL":          "logging.level",
		"TEXTSEL_LOCALE":             "ui.locale",
		"TEXTSEL_PIXEL_RATIO":        "ui.pixelRatio",
		"TEXTSEL_SELECTION_DISTANCE": "selection.distance",
		"TEXTSEL_SEARCH_ENGINE":      "search.name",
		"TEXTSEL_SEARCH_URL":         "search.template",
	}
}

// AddMapping maps an environment variable to a configuration path.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// Load implements Loader. Empty values are kept as empty strings.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, parseValue(value))
	}
	return config, nil
}

// envToPath converts TEXTSEL_UI_PIXEL_RATIO to ui.pixelRatio.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")
	if len(parts) < 2 || parts[0] == "" {
		return ""
	}
	name := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part != "" {
			name += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return strings.ToLower(parts[0]) + "." + name
}

// parseValue types a variable: bool, int64, float64 or string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
