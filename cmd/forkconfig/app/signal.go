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

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	Logger "github.com/sirupsen/logrus"
)

// catchCtrlC cancels the context on the first interrupt
func catchCtrlC(cancel context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-signals
		signal.Stop(signals)
		Logger.Debugf("received %s, cancelling", sig)
		cancel()
	}()
}
