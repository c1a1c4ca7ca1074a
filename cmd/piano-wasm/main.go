//go:build js && wasm

package main

import (
	"syscall/js"
	"unsafe"

	"github.com/cwbudde/waveguide-piano/irfile"
	"github.com/cwbudde/waveguide-piano/piano"
)

var (
	globalSynth  *piano.Synth
	outputBuffer []float64
)

func main() {
	c := make(chan struct{})

	js.Global().Set("wasmInit", js.FuncOf(wasmInit))
	js.Global().Set("wasmNoteOn", js.FuncOf(wasmNoteOn))
	js.Global().Set("wasmNoteOff", js.FuncOf(wasmNoteOff))
	js.Global().Set("wasmSetSustain", js.FuncOf(wasmSetSustain))
	js.Global().Set("wasmSetDamper", js.FuncOf(wasmSetDamper))
	js.Global().Set("wasmLoadIR", js.FuncOf(wasmLoadIR))
	js.Global().Set("wasmProcessBlock", js.FuncOf(wasmProcessBlock))
	js.Global().Set("wasmGetMemoryBuffer", js.FuncOf(wasmGetMemoryBuffer))

	println("waveguide piano WASM module loaded")
	<-c
}

func wasmInit(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	sampleRate := float64(args[0].Int())

	params := piano.DefaultParams()
	globalSynth = piano.NewSynthFromParams(sampleRate, params)
	outputBuffer = make([]float64, 128)

	println("Synth initialized at", int(sampleRate), "Hz")
	return nil
}

func wasmNoteOn(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 || globalSynth == nil {
		return nil
	}
	globalSynth.NoteOn(args[0].Int(), args[1].Int())
	return nil
}

func wasmNoteOff(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || globalSynth == nil {
		return nil
	}
	globalSynth.NoteOff(args[0].Int(), 64)
	return nil
}

func wasmSetSustain(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || globalSynth == nil {
		return nil
	}
	if args[0].Bool() {
		globalSynth.SetSustain(0)
	} else {
		globalSynth.SetSustain(1)
	}
	return nil
}

func wasmSetDamper(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || globalSynth == nil {
		return nil
	}
	globalSynth.SetDamper(args[0].Float())
	return nil
}

// wasmLoadIR accepts a raw little-endian float64 body IR (the format
// irfile.Save produces), written to a scratch file so the existing
// irfile.Load path can parse it without a second decoder.
func wasmLoadIR(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || globalSynth == nil {
		return nil
	}

	arrayBuffer := args[0]
	length := arrayBuffer.Get("byteLength").Int()
	if length == 0 {
		println("IR data is empty")
		return nil
	}

	irData := make([]byte, length)
	js.CopyBytesToGo(irData, arrayBuffer)

	tmpFile := "/tmp/ir.raw"
	if err := writeScratchIR(tmpFile, irData); err != nil {
		println("Failed to stage IR file:", err.Error())
		return nil
	}

	ir, err := irfile.Load(tmpFile)
	if err != nil {
		println("Failed to load IR:", err.Error())
		return nil
	}
	globalSynth.SetBodyIR(ir)

	println("IR loaded successfully:", length, "bytes")
	return nil
}

func wasmProcessBlock(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || globalSynth == nil {
		return 0
	}

	numFrames := args[0].Int()
	if numFrames > len(outputBuffer) {
		numFrames = len(outputBuffer)
	}

	globalSynth.ProcessBlock(outputBuffer[:numFrames])

	ptr := &outputBuffer[0]
	return js.ValueOf(uintptr(unsafe.Pointer(ptr)))
}

func wasmGetMemoryBuffer(this js.Value, args []js.Value) interface{} {
	return js.Global().Get("Go").Get("_inst").Get("exports").Get("mem").Get("buffer")
}
