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

package templates

const BootstrapSummary = `============================================================
Bootstrap Summary
============================================================
{{ decorate "underline bold" "Debug Mode" }}:	{{ status .Debug }}
{{ decorate "underline bold" "Site Domain" }}:	{{ .SiteDomain }}
{{- if .Debug }}
 Logger, error handler and slack are disabled in debug mode
{{- else }}
{{ decorate "logger" "" }}{{ decorate "underline bold" "Logger" }}:	{{ .LoggerName }} ({{ .LoggerServiceID }})
{{ decorate "underline bold" "Handlers" }}:	{{ .HandlerCount }}
{{ decorate "slack" "" }}{{ decorate "underline bold" "Slack" }}:	{{ status .SlackEnabled }}
{{- if .SlackEnabled }}
{{ decorate "bullet" "Webhook" }}:	{{ .Webhook }}
{{ decorate "bullet" "Channel" }}:	{{ .Channel }}
{{ decorate "bullet" "Username" }}:	{{ .Username }}
{{ decorate "bullet" "Icon" }}:	{{ .Icon }}
{{ decorate "bullet" "Level" }}:	{{ .Level }}
{{ decorate "bullet" "Bubble" }}:	{{ .Bubble }}
{{- end }}
{{- end }}
============================================================
`
