// Command drivesim-demo wires a Game up to an optional debug telemetry
// stream and runs its frame loop until interrupted. It is a minimal host:
// the actual browser-side renderer is out of scope for this module, but
// any renderer can drive the same Game by calling Input and OnFrame
// directly instead of going through the telemetry server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drivesim/internal/config"
	"drivesim/internal/game"
	"drivesim/internal/gameplay"
	"drivesim/internal/logging"
	"drivesim/internal/oracle"
	"drivesim/internal/telemetry"
	"drivesim/internal/vecmath"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize structured logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	logging.ReplaceGlobals(logger)

	logger.Info("handling profile selected", logging.String("profile", cfg.HandlingProfileID))
	tunables, err := loadTunables(cfg, logger)
	if err != nil {
		logger.Fatal("failed to load tuning parameters", logging.Error(err))
	}

	spawn := vecmath.NewIsometry(vecmath.Vec3{Y: 2}, vecmath.QuatIdentity)
	g := game.New(tunables, spawn, buildDemoWorld)

	var telemetrySrv *telemetry.Server
	if cfg.TelemetryEnabled {
		telemetrySrv = telemetry.NewServer(int(cfg.TelemetryMaxPayloadBytes),
			telemetry.WithLogger(logger),
			telemetry.WithPingInterval(cfg.TelemetryPingInterval),
			telemetry.WithConnectLimiter(telemetry.NewSlidingWindowLimiter(time.Minute, 5, nil)),
		)
		mux := http.NewServeMux()
		mux.HandleFunc("/debug/stream", telemetrySrv.Handler())
		go func() {
			logger.Info("telemetry server listening", logging.String("addr", cfg.TelemetryAddr))
			if err := http.ListenAndServe(cfg.TelemetryAddr, mux); err != nil {
				logger.Warn("telemetry server stopped", logging.Error(err))
			}
		}()
	}

	var capture *telemetry.CaptureWriter
	if cfg.CaptureDir != "" {
		capturePath := cfg.CaptureDir + "/session.jsonl.sz"
		capture, err = telemetry.NewCaptureWriter(capturePath, nil)
		if err != nil {
			logger.Warn("capture writer disabled", logging.Error(err))
			capture = nil
		} else {
			defer func() { _ = capture.Close() }()
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	logger.Info("drivesim demo host running")
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case <-ticker.C:
			snap := g.OnFrame()
			tick++
			if telemetrySrv != nil {
				result := telemetrySrv.Publish(snap)
				if capture != nil {
					_ = capture.Append(tick, result.Payload)
					pos := snap.CarTransform.Translation
					fwd := snap.CarTransform.Rotation.Forward()
					_ = capture.AppendTrace(tick, time.Now().UnixMilli(),
						[3]float64{pos.X, pos.Y, pos.Z}, [3]float64{fwd.X, fwd.Y, fwd.Z})
				}
			}
		}
	}
}

// loadTunables starts from the configured handling profile's derived
// tunables, then layers an optional literal-value override document on top
// for power users who want to hand-tune individual constants.
func loadTunables(cfg *config.Config, logger *logging.Logger) (gameplay.TunableSet, error) {
	base := gameplay.TunablesForProfile(cfg.HandlingProfileID)
	if cfg.TuningOverridePath == "" {
		return base, nil
	}
	payload, err := os.ReadFile(cfg.TuningOverridePath)
	if err != nil {
		return gameplay.TunableSet{}, err
	}
	if err := json.Unmarshal(payload, &base); err != nil {
		return gameplay.TunableSet{}, err
	}
	logger.Info("loaded tuning override", logging.String("path", cfg.TuningOverridePath))
	return base, nil
}

// buildDemoWorld lays out a flat ground plane and a raised platform, enough
// static geometry to exercise suspension, tire, and camera occlusion logic
// without needing a real level loader.
func buildDemoWorld(o *oracle.Oracle) {
	ground := o.InsertStatic(vecmath.IsometryIdentity)
	o.AddStaticField(ground, oracle.NewPlaneField(vecmath.Zero, vecmath.Up))

	platform := o.InsertStatic(vecmath.IsometryIdentity)
	o.AddStaticField(platform, oracle.BoxField{
		Center:      vecmath.Vec3{Z: 40, Y: 1},
		HalfExtents: vecmath.Vec3{X: 10, Y: 1, Z: 10},
	})
}
