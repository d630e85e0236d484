/*
copyright 2020 the Goployer authors

licensed under the apache license, version 2.0 (the "license");
you may not use this file except in compliance with the license.
you may obtain a copy of the license at

    http://www.apache.org/licenses/license-2.0

unless required by applicable law or agreed to in writing, software
distributed under the license is distributed on an "as is" basis,
without warranties or conditions of any kind, either express or implied.
see the license for the specific language governing permissions and
limitations under the license.
*/

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	blackfriday "github.com/russross/blackfriday/v2"
)

const (
	defPrefix = "#/definitions/"
)

var (
	regexpDefaults = regexp.MustCompile("(.*)Defaults to `(.*)`")
	regexpExample  = regexp.MustCompile("(.*)For example: `(.*)`")
	pTags          = regexp.MustCompile("(<p>)|(</p>)")
)

type Generator struct {
	strict bool
}

type Schema struct {
	*Definition
	Definitions map[string]*Definition `json:"definitions,omitempty"`
}

type Definition struct {
	Ref                  string                 `json:"$ref,omitempty"`
	Properties           map[string]*Definition `json:"properties,omitempty"`
	AdditionalProperties interface{}            `json:"additionalProperties,omitempty"`
	PreferredOrder       []string               `json:"preferredOrder,omitempty"`
	AnyOf                []*Definition          `json:"anyOf,omitempty"`
	Type                 string                 `json:"type,omitempty"`
	Description          string                 `json:"description,omitempty"`
	HTMLDescription      string                 `json:"x-intellij-html-description,omitempty"`
	Default              interface{}            `json:"default,omitempty"`
	Examples             []string               `json:"examples,omitempty"`
}

func main() {
	dryRun := len(os.Args) > 1 && os.Args[1] == "--dry-run"

	if err := generateSchema(".", dryRun, "parameters_file", "parameters"); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func generateSchema(root string, dryRun bool, inputFile, outputFile string) error {
	input := filepath.Join(root, "pkg", "schemas", inputFile+".go")
	output := filepath.Join(root, "docs", "schemas", outputFile+".json")

	buf, err := Generator{strict: true}.Apply(input)
	if err != nil {
		return err
	}

	if dryRun {
		current, err := ioutil.ReadFile(output)
		if err != nil {
			return fmt.Errorf("unable to read existing schema: %w", err)
		}

		if !bytes.Equal(bytes.Replace(current, []byte("\r\n"), []byte("\n"), -1), buf) {
			return fmt.Errorf("schema %q is outdated", output)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}

	if err := ioutil.WriteFile(output, buf, 0644); err != nil {
		return fmt.Errorf("unable to write schema %q: %w", output, err)
	}

	return nil
}

// Apply builds the json schema of the documented types in input.
// The first documented type is the root.
func (g Generator) Apply(input string) ([]byte, error) {
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, input, nil, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	var preferredOrder []string
	definitions := make(map[string]*Definition)

	for _, i := range node.Decls {
		declaration, ok := i.(*ast.GenDecl)
		if !ok {
			continue
		}

		for _, spec := range declaration.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			comment := declaration.Doc.Text()
			if len(comment) == 0 {
				continue
			}

			name := ts.Name.Name
			preferredOrder = append(preferredOrder, name)

			def, err := g.ParseDefinition(name, ts.Type, comment)
			if err != nil {
				return nil, err
			}
			definitions[name] = def
		}
	}

	if len(preferredOrder) == 0 {
		return nil, fmt.Errorf("no documented type in %s", input)
	}

	schema := Schema{
		Definition: &Definition{
			Type: "object",
			AnyOf: []*Definition{{
				Ref: defPrefix + preferredOrder[0],
			}},
		},
		Definitions: definitions,
	}

	return toJSON(schema)
}

func (g Generator) ParseDefinition(name string, t ast.Expr, comment string) (*Definition, error) {
	def := &Definition{}

	switch tt := t.(type) {
	case *ast.Ident:
		setTypeOrRef(def, tt.Name)

	case *ast.StarExpr:
		if ident, ok := tt.X.(*ast.Ident); ok {
			setTypeOrRef(def, ident.Name)
		}

	case *ast.StructType:
		for _, field := range tt.Fields.List {
			if field.Tag == nil {
				continue
			}

			yamlName := yamlFieldName(field)
			if yamlName == "" || yamlName == "-" {
				continue
			}

			property, err := g.ParseDefinition(field.Names[0].Name, field.Type, field.Doc.Text())
			if err != nil {
				return nil, err
			}

			if def.Properties == nil {
				def.Properties = make(map[string]*Definition)
			}

			def.PreferredOrder = append(def.PreferredOrder, yamlName)
			def.Properties[yamlName] = property
			def.AdditionalProperties = false
		}
	}

	description := strings.TrimSpace(strings.Replace(comment, "\n", " ", -1))

	// Extract default value
	if m := regexpDefaults.FindStringSubmatch(description); m != nil {
		description = strings.TrimSpace(m[1])
		def.Default = m[2]
	}

	// Extract example
	if m := regexpExample.FindStringSubmatch(description); m != nil {
		description = strings.TrimSpace(m[1])
		def.Examples = []string{m[2]}
	}

	// Remove type prefix
	description = regexp.MustCompile("^"+name+" ((is (the )?)|(are (the )?))?").ReplaceAllString(description, "")

	if g.strict && name != "" && description == "" {
		return nil, fmt.Errorf("no description on %s", name)
	}
	def.Description = description

	// Convert to HTML
	html := string(blackfriday.Run([]byte(description), blackfriday.WithNoExtensions()))
	def.HTMLDescription = strings.TrimSpace(pTags.ReplaceAllString(html, ""))

	return def, nil
}

func setTypeOrRef(def *Definition, typeName string) {
	switch typeName {
	case "string":
		def.Type = "string"
	case "bool":
		def.Type = "boolean"
	case "int", "int64", "int32":
		def.Type = "integer"
	default:
		def.Ref = defPrefix + typeName
	}
}

func yamlFieldName(field *ast.Field) string {
	tag := strings.Replace(field.Tag.Value, "`", "", -1)
	tags := reflect.StructTag(tag)
	yamlTag := tags.Get("yaml")

	return strings.Split(yamlTag, ",")[0]
}

// Make sure HTML description are not encoded
func toJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
