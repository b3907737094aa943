package daemon

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/tbit-io/whisper-paste/internal/audio"
	"github.com/tbit-io/whisper-paste/internal/bus"
	"github.com/tbit-io/whisper-paste/internal/config"
	"github.com/tbit-io/whisper-paste/internal/hotkey"
	"github.com/tbit-io/whisper-paste/internal/session"
)

type Options struct {
	// Hotkeys enables the in-process global hotkey listener. When
	// disabled, recording is toggled over the control socket only.
	Hotkeys bool
}

type Daemon struct {
	manager    *config.Manager
	controller *session.Controller
	monitor    *hotkey.Monitor

	ctx    context.Context
	cancel context.CancelFunc
}

func New(opts Options) (*Daemon, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	cfg := manager.GetConfig()
	controller := session.NewController(
		session.NewState(),
		audio.NewRecorder(cfg.ToAudioConfig()),
		&reloadingTranscriber{manager: manager},
		&reloadingPaster{manager: manager},
		&reloadingNotifier{manager: manager},
		session.Config{BroadcastInterval: cfg.Recording.BroadcastInterval},
	)

	d := &Daemon{
		manager:    manager,
		controller: controller,
		ctx:        ctx,
		cancel:     cancel,
	}

	if opts.Hotkeys {
		monitor, err := hotkey.NewMonitor(cfg.ToHotkeyConfig())
		if err != nil {
			cancel()
			manager.Stop()
			return nil, fmt.Errorf("hotkey setup failed: %w", err)
		}
		d.monitor = monitor
	}

	return d, nil
}

func (d *Daemon) status() session.Status {
	return d.controller.State().Status()
}

func (d *Daemon) Run() error {
	if err := bus.CheckExistingDaemon(); err != nil {
		return err
	}

	ln, err := bus.Listen()
	if err != nil {
		return err
	}
	defer ln.Close()

	if err := bus.CreatePidFile(); err != nil {
		return fmt.Errorf("failed to create PID file: %w", err)
	}
	defer bus.RemovePidFile()

	if err := d.manager.StartWatching(d.ctx); err != nil {
		log.Printf("Config watching disabled: %v", err)
	}
	defer d.manager.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigCh)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully", sig)
		d.cancel()
	}()

	// Close the listener when context is done
	go func() {
		<-d.ctx.Done()
		ln.Close()
	}()

	if d.monitor != nil {
		d.monitor.Run(d.ctx)
		go d.forwardToggles()
	}

	log.Printf("Daemon started, listening on socket")

	for {
		c, err := ln.Accept()
		if err != nil {
			if d.ctx.Err() != nil {
				log.Printf("Shutdown requested")
				d.shutdown()
				return nil
			}
			log.Printf("Accept error: %v", err)
			return fmt.Errorf("accept failed: %w", err)
		}
		go d.handle(c)
	}
}

func (d *Daemon) shutdown() {
	if d.status() == session.Recording {
		d.controller.State().RequestStop()
	}
	d.controller.Wait()
	if d.monitor != nil {
		d.monitor.Wait()
	}
}

func (d *Daemon) forwardToggles() {
	for {
		select {
		case <-d.ctx.Done():
			return
		case <-d.monitor.Toggles():
			d.controller.Toggle()
		}
	}
}

func (d *Daemon) handle(c net.Conn) {
	defer c.Close()

	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil {
		log.Printf("Client read error: %v", err)
		fmt.Fprintf(c, "ERR read_error: %v\n", err)
		return
	}
	if len(line) == 0 {
		fmt.Fprint(c, "ERR empty\n")
		return
	}
	cmd := line[0]

	switch cmd {
	case 't':
		d.controller.Toggle()
		fmt.Fprint(c, "OK toggled\n")
	case 'x':
		if d.status() == session.Recording {
			d.controller.State().RequestStop()
			fmt.Fprint(c, "OK stopping\n")
		} else {
			fmt.Fprint(c, "ERR not_recording\n")
		}
	case 's':
		fmt.Fprintf(c, "STATUS status=%s\n", d.status())
	case 'r':
		fmt.Fprintf(c, "RESULT %s\n", strconv.Quote(d.controller.State().LastResult()))
	case 'v':
		fmt.Fprintf(c, "STATUS proto=%s\n", bus.ProtoVer)
	case 'q':
		fmt.Fprint(c, "OK quitting\n")
		d.cancel()
	default:
		log.Printf("Unknown command: %c", cmd)
		fmt.Fprintf(c, "ERR unknown=%q\n", cmd)
	}
}
