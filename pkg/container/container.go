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

package container

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Container is the configuration source handed to startup code.
// Parameters are read-only, services are registered at startup.
type Container interface {
	HasParameter(name string) bool
	GetParameter(name string) (interface{}, error)
	Has(id string) bool
	Get(id string) (interface{}, error)
	Set(id string, service interface{})
}

// ParameterNotFoundError is returned when a parameter is not declared
type ParameterNotFoundError struct {
	Name string
}

func (e ParameterNotFoundError) Error() string {
	return fmt.Sprintf("parameter does not exist: %s", e.Name)
}

// ServiceNotFoundError is returned when a service is not registered
type ServiceNotFoundError struct {
	ID string
}

func (e ServiceNotFoundError) Error() string {
	return fmt.Sprintf("service does not exist: %s", e.ID)
}

// Parameter returns the value of name or fallback when it is not declared
func Parameter(c Container, name string, fallback interface{}) interface{} {
	if !c.HasParameter(name) {
		return fallback
	}

	v, err := c.GetParameter(name)
	if err != nil {
		return fallback
	}

	return v
}

// ParameterBag keeps parameters in viper and services in a map
type ParameterBag struct {
	params *viper.Viper

	mu       sync.RWMutex
	services map[string]interface{}
}

// New creates a container on top of v. A nil v gives an empty parameter set.
func New(v *viper.Viper) *ParameterBag {
	if v == nil {
		v = viper.New()
	}

	return &ParameterBag{
		params:   v,
		services: map[string]interface{}{},
	}
}

// FromMap creates a container from dotted parameter names
func FromMap(params map[string]interface{}) *ParameterBag {
	v := viper.New()
	for name, value := range params {
		v.Set(name, value)
	}

	return New(v)
}

// Load reads parameters from a yaml, json or toml file.
// Environment variables override file values when withEnv is set.
func Load(path string, withEnv bool) (*ParameterBag, error) {
	v := viper.New()
	if withEnv {
		BindEnv(v)
	}

	if path == "" {
		return New(v), nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read parameters from %s", path)
	}

	return New(v), nil
}

// LoadBytes reads parameters downloaded from a remote file.
// The format is taken from the extension of name.
func LoadBytes(name string, data []byte, withEnv bool) (*ParameterBag, error) {
	v := viper.New()
	if withEnv {
		BindEnv(v)
	}

	v.SetConfigType(strings.TrimPrefix(filepath.Ext(name), "."))
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.Wrapf(err, "read parameters from %s", name)
	}

	return New(v), nil
}

// BindEnv lets PAGEON_SLACK_WEBHOOK override pageon.slack_webhook
func BindEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// HasParameter checks if a parameter is declared
func (p *ParameterBag) HasParameter(name string) bool {
	return p.params.IsSet(name)
}

// GetParameter returns a declared parameter
func (p *ParameterBag) GetParameter(name string) (interface{}, error) {
	if !p.HasParameter(name) {
		return nil, ParameterNotFoundError{Name: name}
	}

	return p.params.Get(name), nil
}

// Parameters returns every declared parameter as nested maps
func (p *ParameterBag) Parameters() map[string]interface{} {
	return p.params.AllSettings()
}

// Merge declares dotted parameters on top of the file and environment values
func (p *ParameterBag) Merge(params map[string]interface{}) {
	for name, value := range params {
		p.params.Set(name, value)
	}
}

// Has checks if a service is registered
func (p *ParameterBag) Has(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	_, ok := p.services[id]
	return ok
}

// Get returns a registered service
func (p *ParameterBag) Get(id string) (interface{}, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s, ok := p.services[id]
	if !ok {
		return nil, ServiceNotFoundError{ID: id}
	}

	return s, nil
}

// Set registers a service. A nil service removes the id.
func (p *ParameterBag) Set(id string, service interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if service == nil {
		delete(p.services, id)
		return
	}
	p.services[id] = service
}

// ServiceIDs returns the registered ids
func (p *ParameterBag) ServiceIDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var ids []string
	for id := range p.services {
		ids = append(ids, id)
	}

	return ids
}
