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

package tool

import (
	"bytes"
	"testing"
	"text/template"

	"github.com/fatih/color"
)

func TestMaskSecret(t *testing.T) {
	testData := []struct {
		Input    string
		Expected string
	}{
		{
			Input:    "https://hooks.slack.com/services/T000/B000/XXXX",
			Expected: "https://hooks.slack.com/****",
		},
		{
			Input:    "https://hooks.slack.com",
			Expected: "https://hooks.slack.com",
		},
		{
			Input:    "secret",
			Expected: "******",
		},
		{
			Input:    "",
			Expected: "",
		},
	}

	for _, td := range testData {
		if output := MaskSecret(td.Input); output != td.Expected {
			t.Errorf("expected: %s, output: %s, input: %s", td.Expected, output, td.Input)
		}
	}
}

func TestIsStringInArray(t *testing.T) {
	arr := []string{"log-level", "config"}
	if !IsStringInArray("config", arr) {
		t.Errorf("config should be in %v", arr)
	}

	if IsStringInArray("level", arr) {
		t.Errorf("level should not be in %v", arr)
	}
}

func TestStatus(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	if output := Status(true); output != "yes" {
		t.Errorf("expected: yes, output: %s", output)
	}

	if output := Status(false); output != "no" {
		t.Errorf("expected: no, output: %s", output)
	}
}

func TestPrintTemplate(t *testing.T) {
	var buf bytes.Buffer
	tmpl := template.Must(template.New("test").Parse("{{ .Name }}\t{{ .Value }}\n"))

	if err := PrintTemplate(&buf, struct {
		Name  string
		Value string
	}{Name: "debug", Value: "false"}, tmpl); err != nil {
		t.Fatal(err)
	}

	if buf.String() != "debug   false\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintYAML(&buf, map[string]bool{"debug": true}); err != nil {
		t.Fatal(err)
	}

	if buf.String() != "debug: true\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
