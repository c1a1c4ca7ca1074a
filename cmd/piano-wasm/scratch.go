//go:build js && wasm

package main

import "os"

func writeScratchIR(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
