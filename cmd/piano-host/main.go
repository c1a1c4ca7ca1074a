// Command piano-host runs the waveguide piano as a live instrument: it
// registers one MIDI input port and one audio output port and blocks
// until interrupted, the same register-then-block lifecycle the original
// hardware driver used under JACK.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/waveguide-piano/host"
	"github.com/cwbudde/waveguide-piano/irfile"
	"github.com/cwbudde/waveguide-piano/piano"
	"github.com/cwbudde/waveguide-piano/preset"
)

func main() {
	presetPath := flag.String("preset", "", "Optional preset JSON file path")
	flag.Parse()

	params := piano.DefaultParams()
	if *presetPath != "" {
		loaded, err := preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
		params = loaded
	}

	s := piano.NewSynthFromParams(48000, params)
	if params.BodyIRPath != "" {
		ir, err := irfile.Load(params.BodyIRPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading body IR %q: %v\n", params.BodyIRPath, err)
			os.Exit(1)
		}
		s.SetBodyIR(ir)
	}

	adapter := host.NewAdapter(s)
	backend, err := host.Open(adapter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio/MIDI backend: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	fmt.Println("piano-host running, press Ctrl-C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
