//go:build generate

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	iyaml "github.com/invopop/yaml"
	"github.com/mcuadros/go-defaults"

	"github.com/theopenlane/utils/envparse"

	"github.com/vulnissimo/vulnissimo/config"
	"github.com/vulnissimo/vulnissimo/internal/types"
)

const (
	// koanfTag names config keys in the schema, the YAML example and the env example
	koanfTag = "koanf"
	// skipper is the tag value that indicates a field should be skipped
	skipper = "-"
	// modulePath is the import path prefix comments are looked up under
	modulePath = "github.com/vulnissimo/vulnissimo/"
	// envPrefix matches config.EnvPrefix without its trailing separator
	envPrefix = "VULNISSIMO"
	// ownerReadWrite is the file permission for generated files
	ownerReadWrite = 0600
)

// commentPackages is the list of packages to parse for Go comments
var commentPackages = []string{
	"./config",
	"./internal/types",
}

// artifact is one generated file and the function rendering its content
type artifact struct {
	path   string
	render func() ([]byte, error)
}

// main writes every artifact derived from the config and scan result types.
// All files are committed; rerun with `go run -tags generate ./jsonschema`
// after changing either type.
func main() {
	cfg := &config.Config{}
	defaults.SetDefaults(cfg)

	comments, err := goComments(commentPackages)
	if err != nil {
		panic(err)
	}

	artifacts := []artifact{
		{path: "./jsonschema/vulnissimo.config.json", render: func() ([]byte, error) { return configSchema(cfg, comments) }},
		{path: "./jsonschema/vulnissimo.scanresult.json", render: func() ([]byte, error) { return resultSchema(comments) }},
		{path: "./config/config.example.yaml", render: func() ([]byte, error) { return iyaml.Marshal(yamlValue(reflect.ValueOf(cfg))) }},
		{path: "./config/.env.example", render: func() ([]byte, error) { return envExample(cfg) }},
	}

	for _, a := range artifacts {
		data, err := a.render()
		if err != nil {
			panic(fmt.Errorf("rendering %s: %w", a.path, err))
		}

		if err := os.WriteFile(a.path, data, ownerReadWrite); err != nil {
			panic(fmt.Errorf("writing %s: %w", a.path, err))
		}

		fmt.Printf("wrote %s\n", a.path)
	}
}

// goComments collects doc comments of the given packages, keyed the way the reflector looks them up
func goComments(packages []string) (map[string]string, error) {
	r := &jsonschema.Reflector{}

	for _, pkg := range packages {
		if err := r.AddGoComments(modulePath, pkg); err != nil {
			return nil, fmt.Errorf("failed to add go comments for package %s: %w", pkg, err)
		}
	}

	if r.CommentMap == nil {
		return map[string]string{}, nil
	}

	return r.CommentMap, nil
}

// configSchema describes the config file, keyed by koanf tags
func configSchema(cfg *config.Config, comments map[string]string) ([]byte, error) {
	r := jsonschema.Reflector{
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               koanfTag,
		CommentMap:                 comments,
	}

	return json.MarshalIndent(r.Reflect(cfg), "", "  ")
}

// resultSchema describes the JSON document the CLI prints, keyed by json tags
func resultSchema(comments map[string]string) ([]byte, error) {
	r := jsonschema.Reflector{
		ExpandedStruct: true,
		CommentMap:     comments,
		Mapper:         wireType,
	}

	return json.MarshalIndent(r.Reflect(&types.ScanResult{}), "", "  ")
}

// wireType overrides types whose JSON form differs from their Go layout
func wireType(t reflect.Type) *jsonschema.Schema {
	if t == reflect.TypeOf(uuid.UUID{}) {
		return &jsonschema.Schema{Type: "string", Format: "uuid"}
	}

	return nil
}

// yamlValue mirrors a config value as YAML input, nested sections as maps and
// durations in the notation koanf parses back
func yamlValue(v reflect.Value) any {
	v = reflect.Indirect(v)

	if v.Type() == reflect.TypeOf(time.Duration(0)) {
		return time.Duration(v.Int()).String()
	}

	if v.Kind() != reflect.Struct {
		return v.Interface()
	}

	section := map[string]any{}

	for i := range v.NumField() {
		field := v.Type().Field(i)

		key := field.Tag.Get(koanfTag)
		if !field.IsExported() || key == "" || key == skipper {
			continue
		}

		section[key] = yamlValue(v.Field(i))
	}

	return section
}

// envExample lists every VULNISSIMO_ variable with its default, leaving sensitive values blank
func envExample(cfg *config.Config) ([]byte, error) {
	cp := envparse.Config{
		FieldTagName: koanfTag,
		Skipper:      skipper,
	}

	vars, err := cp.GatherEnvInfo(envPrefix, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to gather environment info: %w", err)
	}

	var b strings.Builder

	for _, v := range vars {
		if v.Tags.Get("sensitive") == "true" {
			fmt.Fprintf(&b, "# %s is sensitive and should be set securely\n%s=\"\"\n", v.Key, v.Key)
			continue
		}

		value := v.Tags.Get("default")
		if d, err := time.ParseDuration(value); err == nil && v.Type == reflect.TypeOf(time.Duration(0)) {
			value = d.String()
		}

		fmt.Fprintf(&b, "%s=%q\n", v.Key, value)
	}

	return []byte(b.String()), nil
}
