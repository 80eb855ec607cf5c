package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"strings"

	"github.com/oleworth/go-spectrum/internal/engine"
	"github.com/oleworth/go-spectrum/internal/machine"
	"github.com/oleworth/go-spectrum/internal/snapshot"
	"github.com/oleworth/go-spectrum/internal/tape"
	"github.com/oleworth/go-spectrum/internal/worker"
	"github.com/oleworth/go-spectrum/pkg/log"
	"github.com/oleworth/go-spectrum/pkg/utils"
	"github.com/oleworth/go-spectrum/pkg/web"
)

func main() {
	// start pprof
	go func() {
		err := http.ListenAndServe("localhost:6060", nil)
		if err != nil {
			return
		}
	}()

	addr := flag.String("addr", ":8090", "The address to serve the websocket channel on")
	asModel := flag.String("model", "48k", "The model to emulate. Can be 48k, 128k or pentagon")
	mediaFile := flag.String("load", "", "A tape (.tap, .tzx) or snapshot (.sna, .z80) file to load at startup")
	diskFile := flag.String("disk", "", "A disk image to attach at startup")
	noCompression := flag.Bool("no-compression", false, "Disable frame compression")
	noFrameCache := flag.Bool("no-frame-cache", false, "Disable the duplicate frame cache")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := log.New()
	if *debug {
		logger = log.NewWithWriter(os.Stdout, true)
	}

	eng := engine.NewNull()

	opts := []machine.Opt{machine.WithLogger(logger)}
	if model := engine.StringToModel(*asModel); model != engine.Unset {
		opts = append(opts, machine.AsModel(model))
	}

	m := machine.New(eng, opts...)

	if *mediaFile != "" {
		if err := loadMedia(m, *mediaFile); err != nil {
			logger.Errorf("load %s: %v", *mediaFile, err)
		}
	}
	if *diskFile != "" {
		data, _, err := utils.LoadFile(*diskFile)
		if err != nil {
			logger.Errorf("load %s: %v", *diskFile, err)
		} else {
			m.AttachDisk(data)
		}
	}

	w := worker.New(m, worker.WithLogger(logger))
	go w.Run()

	hub := web.NewHub(w,
		web.WithLogger(logger),
		web.WithCompression(!*noCompression),
		web.WithFrameCaching(!*noFrameCache),
	)

	logger.Infof("serving on %s", *addr)
	if err := hub.Run(*addr); err != nil {
		logger.Errorf("serve: %v", err)
	}
}

// loadMedia attaches a tape or applies a snapshot depending on the file
// type, looking inside archives when necessary.
func loadMedia(m *machine.Machine, filename string) error {
	data, name, err := utils.LoadFile(filename)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".tap":
		src, err := tape.NewTAP(data)
		if err != nil {
			return err
		}
		m.AttachTape(src)
	case ".tzx":
		src, err := tape.NewTZX(data)
		if err != nil {
			return err
		}
		m.AttachTape(src)
	case ".sna":
		s, err := snapshot.ReadSNA(data)
		if err != nil {
			return err
		}
		m.LoadSnapshot(s)
	case ".z80":
		s, err := snapshot.ReadZ80(data)
		if err != nil {
			return err
		}
		m.LoadSnapshot(s)
	default:
		src, err := tape.NewTAP(data)
		if err != nil {
			return err
		}
		m.AttachTape(src)
	}
	return nil
}
