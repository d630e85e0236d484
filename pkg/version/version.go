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

package version

import (
	"fmt"
	"io"
	"runtime"
)

var version, gitCommit, gitTreeState, buildDate string
var platform = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)

type Controller struct{}

type Info struct {
	Version      string
	BuildDate    string
	GitCommit    string
	GitTreeState string
	Platform     string
}

// Get returns the build information set with -ldflags
func Get() Info {
	v := version
	if len(v) == 0 {
		v = "dev"
	}

	return Info{
		Version:      v,
		BuildDate:    buildDate,
		GitCommit:    gitCommit,
		GitTreeState: gitTreeState,
		Platform:     platform,
	}
}

// Print writes the version, and the build details when verbose is set
func (v Controller) Print(out io.Writer, info Info, verbose bool) error {
	if !verbose {
		_, err := fmt.Fprintln(out, info.Version)
		return err
	}

	_, err := fmt.Fprintf(out, "%s (commit: %s, tree: %s, built: %s, platform: %s)\n",
		info.Version, info.GitCommit, info.GitTreeState, info.BuildDate, info.Platform)
	return err
}
