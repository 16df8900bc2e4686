package transport

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

const modulePath = "github.com/nordpay/nordpay-go"

// userAgent derives the User-Agent value once per process: SDK name, the
// module version when the SDK is consumed as a dependency, and the Go
// runtime version.
var userAgent = sync.OnceValue(func() string {
	return fmt.Sprintf("Nordpay-Go-SDK/%s Go/%s", moduleVersion(), runtime.Version())
})

func moduleVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	if info.Main.Path == modulePath && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	for _, dep := range info.Deps {
		if dep.Path == modulePath && dep.Version != "" {
			return dep.Version
		}
	}
	return "dev"
}
