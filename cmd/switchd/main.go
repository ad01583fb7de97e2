// Command switchd debounces GPIO switches and publishes their events to MQTT.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/sweeney/switchd/button"
	"github.com/sweeney/switchd/internal/config"
	"github.com/sweeney/switchd/internal/gpio"
	"github.com/sweeney/switchd/internal/logic"
	"github.com/sweeney/switchd/internal/mqtt"
	"github.com/sweeney/switchd/internal/status"
	"github.com/sweeney/switchd/internal/web"
	"github.com/sweeney/switchd/ticks"
)

var (
	app        = kingpin.New("switchd", "Debounced switch events over MQTT")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	configPath = app.Flag("config", "Path to the YAML configuration.").Short('c').Default("/etc/switchd.yaml").String()
	runCmd     = app.Command("run", "Poll the configured inputs and publish events.").Default()
	stateCmd   = app.Command("state", "Print the current level of every input and exit.")
	versionCmd = app.Command("version", "Show current version.")
)

var buildTime, buildVersion string

type colorFormatter struct {
	log.TextFormatter
}

func (f *colorFormatter) Format(entry *log.Entry) ([]byte, error) {
	var levelColor int
	switch entry.Level {
	case log.DebugLevel, log.TraceLevel:
		levelColor = 90 // dark grey
	case log.WarnLevel:
		levelColor = 33 // yellow
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		levelColor = 91 // bright red
	default:
		levelColor = 39 // default
	}
	return []byte(fmt.Sprintf("\x1b[%dm%s %s\x1b[0m\n", levelColor,
		entry.Time.Format("15:04:05.000"), entry.Message)), nil
}

func showVersion() {
	if buildTime != "" && buildVersion != "" {
		fmt.Printf("%s (built: %s)\n", buildVersion, buildTime)
	} else {
		fmt.Println("switchd: dev")
	}
}

func main() {
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	log.SetFormatter(&colorFormatter{})
	if *debug {
		log.Info("Enabling debug output...")
		log.SetLevel(log.DebugLevel)
	}

	switch cmd {
	case runCmd.FullCommand():
		err = withConfig(run)
	case stateCmd.FullCommand():
		err = withConfig(printState)
	case versionCmd.FullCommand():
		showVersion()
	default:
		kingpin.FatalUsage("Unrecognized command")
	}
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func withConfig(f func(*config.Config) error) error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	return f(cfg)
}

// input is an opened pin and the device classifying it.
type input struct {
	conf config.Input
	pin  gpio.Pin
	dev  button.Device
}

// openInputs opens every configured pin and builds its device.
// Pins opened before a failure are closed again.
func openInputs(cfg *config.Config, opener gpio.Opener, clk *ticks.Clock) ([]input, error) {
	var out []input
	fail := func(err error) ([]input, error) {
		closeInputs(out)
		return nil, err
	}

	for _, in := range cfg.Inputs {
		bc, err := in.ButtonConfig()
		if err != nil {
			return fail(fmt.Errorf("input %q: %w", in.Name, err))
		}
		pin, err := opener.Open(in.Pin, bc.Pull)
		if err != nil {
			return fail(fmt.Errorf("open pin %d for %q: %w", in.Pin, in.Name, err))
		}
		dev, err := newDevice(in.Kind, pin, clk, bc)
		if err != nil {
			pin.Close()
			return fail(fmt.Errorf("input %q: %w", in.Name, err))
		}
		out = append(out, input{conf: in, pin: pin, dev: dev})
	}
	return out, nil
}

func closeInputs(inputs []input) {
	for _, in := range inputs {
		if err := in.pin.Close(); err != nil {
			log.WithError(err).Warnf("closing pin %d", in.conf.Pin)
		}
	}
}

func newDevice(kind string, pin button.Pin, clk *ticks.Clock, bc button.Config) (button.Device, error) {
	switch kind {
	case config.KindToggle:
		t, err := button.NewToggle(pin, clk, bc)
		if err != nil {
			return nil, err
		}
		return t, nil
	case config.KindUnbuffered:
		u, err := button.NewUnbuffered(pin, clk, bc)
		if err != nil {
			return nil, err
		}
		return u, nil
	default:
		b, err := button.NewButton(pin, clk, bc)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

func printState(cfg *config.Config) error {
	opener, err := gpio.NewOpener(cfg.Backend, cfg.Chip)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer opener.Close()

	for _, in := range cfg.Inputs {
		bc, err := in.ButtonConfig()
		if err != nil {
			return err
		}
		pin, err := opener.Open(in.Pin, bc.Pull)
		if err != nil {
			return fmt.Errorf("open pin %d: %w", in.Pin, err)
		}
		fmt.Println(formatLevel(in.Name, in.Pin, pin.Read(), bc.IsInverted()))
		pin.Close()
	}
	return nil
}

func formatLevel(name string, pin int, high, inverted bool) string {
	level := "LOW"
	if high {
		level = "HIGH"
	}
	return fmt.Sprintf("%s (pin %d): %s, %s", name, pin, level, mqtt.StateString(high != inverted))
}

func run(cfg *config.Config) error {
	opener, err := gpio.NewOpener(cfg.Backend, cfg.Chip)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer opener.Close()

	wall := clock.New()
	clk, err := ticks.NewClock(ticks.NewWallSource(wall), cfg.TickBits)
	if err != nil {
		return err
	}

	inputs, err := openInputs(cfg, opener, clk)
	if err != nil {
		return err
	}
	defer closeInputs(inputs)

	monitor := logic.NewMonitor(wall.Now())
	for _, in := range inputs {
		if err := monitor.Add(in.conf.Name, in.conf.Kind, in.dev); err != nil {
			return err
		}
	}

	publisher, err := mqtt.NewRealPublisher(cfg.Broker, cfg.ClientID)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	tracker := status.NewTracker(wall, status.Config{
		PollMs:      cfg.Poll.Milliseconds(),
		HeartbeatMs: cfg.Heartbeat.Milliseconds(),
		TickBits:    cfg.TickBits,
		Backend:     cfg.Backend,
		Broker:      cfg.Broker,
		ClientID:    cfg.ClientID,
		HTTPAddr:    cfg.HTTP,
	})
	tracker.Update(monitor.States())
	tracker.SetMQTTConnected(publisher.IsConnected())

	snap := tracker.Snapshot()
	startup := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startup); err != nil {
		log.WithError(err).Warn("failed to publish startup event")
	} else {
		log.Info("published startup event")
	}

	if cfg.HTTP != "" {
		srv := web.New(cfg.HTTP, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("http server error")
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Infof("http status server listening on %s", cfg.HTTP)
	}

	log.Infof("started: inputs=%d poll=%v broker=%s heartbeat=%v tickBits=%d",
		monitor.Len(), cfg.Poll, cfg.Broker, cfg.Heartbeat, cfg.TickBits)

	ticker := wall.Ticker(cfg.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(monitor, publisher, publisher, tracker, cfg.Heartbeat, wall.Now, ticker.C, sigCh)
}

// runLoop polls the monitor on every tick until a signal arrives. Events are
// published from a queue so that a slow broker does not stall polling.
func runLoop(monitor *logic.Monitor, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	queue := newPublishQueue(publisher, publishQueueSize)

	refresh := func() {
		if tracker == nil {
			return
		}
		tracker.Update(monitor.States())
		if mqttStatus != nil {
			tracker.SetMQTTConnected(mqttStatus.IsConnected())
		}
	}

	for {
		select {
		case s := <-sig:
			log.Infof("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				refresh()
				event.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", signalName)
			}
			queue.Close()
			if err := publisher.PublishSystem(event); err != nil {
				log.WithError(err).Warn("failed to publish shutdown event")
			} else {
				log.Info("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			events := monitor.Poll(t)
			for _, event := range events {
				log.WithFields(log.Fields{
					"input": event.Input,
					"state": mqtt.StateString(event.State),
				}).Infof("event: %s", event.Flags)
				queue.Publish(event)
			}

			if hb := monitor.CheckHeartbeat(t, heartbeat); hb != nil {
				log.Infof("heartbeat: uptime=%v inputs=%d", hb.Uptime, len(hb.Inputs))
				hbEvent := mqtt.SystemEvent{
					Timestamp: hb.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					refresh()
					hbEvent.RawPayload = status.FormatStatusEvent(tracker.Snapshot(), "HEARTBEAT", "")
				}
				queue.PublishSystem(hbEvent)
			}

			if len(events) > 0 {
				refresh()
			} else if tracker != nil && mqttStatus != nil {
				tracker.SetMQTTConnected(mqttStatus.IsConnected())
			}
		}
	}
}
