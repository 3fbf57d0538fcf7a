package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inspectra/go-scopecam/internal/config"
	"github.com/inspectra/go-scopecam/internal/log"
	"github.com/inspectra/go-scopecam/pkg/engine"
	"github.com/inspectra/go-scopecam/pkg/hardware"
	"github.com/inspectra/go-scopecam/pkg/web"
)

func main() {
	// Command line flags (env vars via internal/config supply defaults)
	port := flag.String("port", config.Port(), "Control API port")
	mode := flag.String("mode", config.Mode(), "Startup camera mode: none, single, stereo")
	backendKind := flag.String("backend", config.BackendKind(), "Hardware backend: v4l2 or sim")
	leftDev := flag.String("left", config.LeftDevice(), "Left (or single) camera device node")
	rightDev := flag.String("right", config.RightDevice(), "Right camera device node")
	poll := flag.Duration("poll", engine.DefaultPollInterval, "Pull cycle interval")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	level := config.LogLevel()
	if *debug {
		level = "debug"
	}
	log.Init(level)

	opMode := hardware.Mode(*mode)
	switch opMode {
	case hardware.ModeNone, hardware.ModeSingle, hardware.ModeStereo:
	default:
		fmt.Fprintf(os.Stderr, "invalid mode %q (none, single, stereo)\n", *mode)
		os.Exit(1)
	}

	fmt.Println("🔬 scopecam parameter daemon")
	fmt.Printf("   Mode:    %s\n", opMode)
	fmt.Printf("   Backend: %s\n", *backendKind)
	fmt.Printf("   Port:    %s\n", *port)
	fmt.Println()

	backend, cleanup, err := openBackend(*backendKind, opMode, *leftDev, *rightDev)
	if err != nil {
		log.Error("opening hardware backend", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	eng := engine.New(backend, opMode, *poll)
	go eng.Run()
	defer eng.Close()

	srv := web.NewServer(*port, eng)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n👋 Shutting down...")
		srv.Stop()
	}()

	if err := srv.Start(); err != nil {
		log.Error("control surface stopped", "error", err)
		os.Exit(1)
	}

	// Give in-flight websocket writes a moment to drain.
	time.Sleep(100 * time.Millisecond)
	fmt.Println("👋 Goodbye!")
}

// openBackend builds the hardware layer for the chosen mode. The sim
// backend needs no devices and is what development off the scope uses.
func openBackend(kind string, mode hardware.Mode, leftDev, rightDev string) (hardware.Backend, func(), error) {
	switch kind {
	case "sim":
		return hardware.NewSim(), func() {}, nil
	case "v4l2":
		// All roles are opened up front so hot mode changes over the API
		// never race a device open. Single mode drives the left node.
		paths := map[hardware.Role]string{
			hardware.RoleSingle: leftDev,
			hardware.RoleLeft:   leftDev,
			hardware.RoleRight:  rightDev,
		}
		if mode == hardware.ModeSingle {
			delete(paths, hardware.RoleRight)
		}
		b, err := hardware.OpenV4L2(paths)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q (v4l2, sim)", kind)
}
