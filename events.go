package main

import (
	"context"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// emitEvent forwards an event to the front-end once the Wails context exists.
func emitEvent(ctx context.Context, name string, data any) {
	if ctx == nil {
		return
	}
	wailsRuntime.EventsEmit(ctx, name, data)
}
