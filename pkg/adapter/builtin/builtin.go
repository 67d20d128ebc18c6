// Package builtin registers the adapters that ship with scannorm.
package builtin

import (
	"github.com/telhawk-systems/scannorm/pkg/adapter"
	"github.com/telhawk-systems/scannorm/pkg/adapter/burp"
	"github.com/telhawk-systems/scannorm/pkg/adapter/nessus"
	"github.com/telhawk-systems/scannorm/pkg/adapter/trivy"
)

// Registry returns a registry holding every shipped adapter.
func Registry() *adapter.Registry {
	return adapter.NewRegistry(
		nessus.VAPT(),
		nessus.Compliance(),
		trivy.New(),
		burp.New(),
	)
}
