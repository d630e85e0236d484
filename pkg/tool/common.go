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
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/ghodss/yaml"
	"github.com/olekukonko/tablewriter"
)

// IsStringInArray checks if string value is in array or not
func IsStringInArray(s string, arr []string) bool {
	for _, as := range arr {
		if as == s {
			return true
		}
	}
	return false
}

// FileExists checks if a file or a directory exists or not
func FileExists(filePath string) bool {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return false
	}
	return true
}

// JoinString joins strings in the slice
func JoinString(arr []string, delimiter string) string {
	return strings.Join(arr, delimiter)
}

// MaskSecret keeps the scheme and host of a webhook url and hides the rest
func MaskSecret(s string) string {
	idx := strings.Index(s, "://")
	if idx < 0 {
		return strings.Repeat("*", len(s))
	}

	rest := s[idx+3:]
	slash := strings.Index(rest, "/")
	if slash < 0 {
		return s
	}

	return s[:idx+3] + rest[:slash+1] + "****"
}

// PrintTemplate renders t with data into out, aligned with tabs
func PrintTemplate(out io.Writer, data interface{}, t *template.Template) error {
	w := tabwriter.NewWriter(out, 0, 5, 3, ' ', tabwriter.TabIndent)
	if err := t.Execute(w, data); err != nil {
		return err
	}
	return w.Flush()
}

// PrintYAML writes data as yaml into out
func PrintYAML(out io.Writer, data interface{}) error {
	b, err := yaml.Marshal(data)
	if err != nil {
		return err
	}

	_, err = out.Write(b)
	return err
}

// PrintTable renders data as a table into out
func PrintTable(out io.Writer, header []string, data [][]string) {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetCenterSeparator("|")
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)

	table.AppendBulk(data)
	table.Render()
}
