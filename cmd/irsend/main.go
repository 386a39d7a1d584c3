package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/rkjdid/util"
	"golang.org/x/sync/errgroup"

	"github.com/neildavis/irblaster/irremote"
	"github.com/neildavis/irblaster/irremote/irprotocol"
	"github.com/neildavis/irblaster/irserial"
	"github.com/neildavis/irblaster/web"
)

var Version = "dev"

var rootConfig *web.Config

var (
	device  = flag.String("dev", "", "path to serial port, if empty it will be searched automatically")
	cfgPath = flag.String("config", "", "path to config (defaults to <user config dir>/irsend/config.toml)")
	send    = flag.String("send", "", "send PROTO:ADDR:CMD once & exit, e.g. NEC:0x04:0x08")
	repeat  = flag.Int("repeat", 0, "repeat frames for -send, above 14 repeats until interrupted")
	dump    = flag.Bool("dump", false, "print the frames of -send instead of sending them")
	verbose = flag.Bool("v", false, "higher verbosity")
	version = flag.Bool("version", false, "print version & exit")
)

func configure() {
	flag.Parse()

	if *version {
		fmt.Printf("irsend %s\n", Version)
		os.Exit(0)
	}
	if *dump {
		return
	}

	if *cfgPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			log.Fatalf("couldn't get user config directory: %s", err)
		}
		*cfgPath = filepath.Join(dir, "irsend", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(*cfgPath), 0755); err != nil {
		log.Fatalf("couldn't mkdir \"%s\": %s", filepath.Dir(*cfgPath), err)
	}

	err := util.ReadTomlFile(&rootConfig, *cfgPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("error reading config \"%s\": %s", *cfgPath, err)
		}
		rootConfig = &web.DefaultConfig
		err = util.WriteTomlFile(rootConfig, *cfgPath)
		if err != nil {
			log.Fatalf("error creating config \"%s\": %s", *cfgPath, err)
		}
		log.Printf("created new config file \"%s\"", *cfgPath)
	}

	if *verbose {
		rootConfig.Web.Verbose = true
	}
	if *device != "" {
		rootConfig.Device = *device
	}
	if !filepath.IsAbs(rootConfig.RemotesDir) {
		rootConfig.RemotesDir = filepath.Join(filepath.Dir(*cfgPath), rootConfig.RemotesDir)
	}

	log.Printf("using config file: %s", *cfgPath)
}

// parseCommand reads PROTO:ADDR:CMD, numbers in any base strconv accepts.
func parseCommand(s string, repeats int) (irremote.Command, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return irremote.Command{}, fmt.Errorf("bad command %q, want PROTO:ADDR:CMD", s)
	}
	id, err := irprotocol.Parse(parts[0])
	if err != nil {
		return irremote.Command{}, err
	}
	addr, err := strconv.ParseUint(parts[1], 0, 16)
	if err != nil {
		return irremote.Command{}, fmt.Errorf("bad address: %w", err)
	}
	cmd, err := strconv.ParseUint(parts[2], 0, 16)
	if err != nil {
		return irremote.Command{}, fmt.Errorf("bad command: %w", err)
	}
	return irremote.Command{
		Protocol: id,
		Address:  uint16(addr),
		Command:  uint16(cmd),
		Flags:    irremote.Repeat(repeats),
	}, nil
}

// dumpFrames prints every frame and pause of cmd. Endless repeats are cut
// after the first repeat frame.
func dumpFrames(cmd irremote.Command) error {
	enc := irremote.NewEncoder(irremote.Config{})
	if err := enc.Generate(cmd); err != nil {
		return err
	}
	for {
		step, err := enc.Next()
		if err != nil {
			return err
		}
		switch step.Kind {
		case irremote.StepFrame:
			f, _ := enc.Frame()
			fmt.Printf("frame %d %s %dHz %d edges %s", f.Index, f.Protocol, f.Frequency, len(f.Edges), f.Duration())
			if f.Truncated {
				fmt.Print(" truncated")
			}
			fmt.Println()
			for _, e := range f.Edges {
				fmt.Printf(" %s", e)
			}
			fmt.Println()
			if f.Index > 0 {
				enc.Stop()
			}
		case irremote.StepPause:
			fmt.Printf("pause %s\n", step.Pause)
		case irremote.StepTrailer:
			fmt.Printf("trailer %s\n", step.Pause)
			return nil
		default:
			return nil
		}
	}
}

func openBlaster() (*irserial.Blaster, error) {
	if rootConfig.Device != "" {
		return irserial.Open(rootConfig.Device, &rootConfig.Serial)
	}
	return irserial.FindBlaster(&rootConfig.Serial)
}

func main() {
	configure()

	var cmd irremote.Command
	if *send != "" {
		var err error
		cmd, err = parseCommand(*send, *repeat)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *dump {
		if *send == "" {
			log.Fatal("-dump needs -send")
		}
		if err := dumpFrames(cmd); err != nil {
			log.Fatal(err)
		}
		return
	}

	blaster, err := openBlaster()
	if err != nil {
		log.Fatal("error opening blaster: ", err)
	}
	defer blaster.Close()
	log.Printf("connected to %s", blaster)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := web.NewHub()
	enc := irremote.NewEncoder(rootConfig.Encoder.Config(events.Publish))
	tx := irremote.NewTransmitter(enc, blaster)

	if *send != "" {
		if err := tx.Send(ctx, cmd); err != nil {
			log.Fatalf("error sending %s: %s", cmd, err)
		}
		return
	}

	srv := web.NewServer(Version, tx, events, rootConfig)
	if err := srv.LoadRemotes(rootConfig.RemotesDir); err != nil {
		log.Println("error loading remotes:", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tx.Run(ctx)
	})
	g.Go(func() error {
		log.Printf("starting webserver on http://%s ...", rootConfig.Web.ListenAddr)
		err := srv.ListenAndServe(ctx)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	log.Println("Press <Ctrl-C> to quit")

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Println("error:", err)
	}
	log.Println("quit received...")
}
