package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/ob6160/Erosion/config"
	"github.com/ob6160/Erosion/core"
	"github.com/ob6160/Erosion/erosion"
	"github.com/ob6160/Erosion/generators"
	"github.com/ob6160/Erosion/stream"
	"github.com/xlab/closer"
)

var (
	settingsPath = flag.String("settings", "settings.json", "path to the JSON settings file")
	addr         = flag.String("addr", "", "listen address, overrides the settings file")
	paused       = flag.Bool("paused", false, "start with the simulation paused")
	meshNormals  = flag.Bool("mesh-normals", false, "take surface normals from the terrain mesh instead of the heightmap")
)

func main() {
	flag.Parse()

	settings, err := config.Load(*settingsPath)
	if err != nil {
		log.Fatalln(err)
	}
	if *addr != "" {
		settings.Server.Addr = *addr
	}

	var terrain = settings.Terrain
	midpointDisp, err := generators.NewMidPointDisplacement(terrain.Size, terrain.Seed)
	if err != nil {
		log.Fatalln(err)
	}
	midpointDisp.SetHeightRange(terrain.MinHeight, terrain.MaxHeight)
	midpointDisp.Generate(terrain.Spread, terrain.Reduce)

	var erosionState = settings.Simulation
	var opts = []erosion.Option{
		erosion.WithWorkers(settings.Server.Workers),
		erosion.WithSeed(terrain.Seed),
	}
	var plane *core.Plane
	if *meshNormals {
		width, length := midpointDisp.Dimensions()
		plane, err = core.NewPlane(length, width, erosionState.CellLength)
		if err != nil {
			log.Fatalln(err)
		}
		if err := plane.Construct(midpointDisp.Heightmap()); err != nil {
			log.Fatalln(err)
		}
		opts = append(opts, erosion.WithNormals(plane))
	}
	if terrain.HardnessScale > 0 {
		hardness := generators.NewSimplexHardness(terrain.HardnessSeed, terrain.HardnessFrequency)
		hardness.Scale = terrain.HardnessScale
		opts = append(opts, erosion.WithHardness(hardness))
	}
	terrainEroder, err := erosion.NewCPUEroder(midpointDisp, &erosionState, opts...)
	if err != nil {
		log.Fatalln(err)
	}
	if !*paused {
		terrainEroder.Resume()
	}

	hub := stream.NewHub(64, log.Default())
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	server := &http.Server{Addr: settings.Server.Addr, Handler: mux}
	go func() {
		log.Println("Server starting on", settings.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalln(err)
		}
	}()

	exitC := make(chan struct{}, 1)
	doneC := make(chan struct{}, 1)
	closer.Bind(func() {
		close(exitC)
		<-doneC
	})

	var interval = time.Duration(settings.Server.UpdateIntervalMs) * time.Millisecond
	var dt = float32(interval.Seconds())
	var frame int
	lastPrint := time.Now()

	fpsTicker := time.NewTicker(interval)
	for {
		select {
		case <-exitC:
			fpsTicker.Stop()
			hub.Close()
			server.Close()
			close(doneC)
			return
		case cmd := <-hub.Commands():
			if err := stream.Apply(terrainEroder, cmd, dt); err != nil {
				log.Println("command", cmd.Type, "rejected:", err)
			}
			syncMesh(plane, terrainEroder)
		case <-fpsTicker.C:
			if err := terrainEroder.Update(dt); err != nil {
				log.Println("step failed:", err)
			}
			syncMesh(plane, terrainEroder)
			frame++
			if frame%settings.Server.BroadcastEvery == 0 {
				hub.Broadcast(terrainEroder.Snapshot(), terrainEroder.IsRunning())
			}
			if time.Since(lastPrint) > time.Second {
				lastPrint = time.Now()
				logStats(terrainEroder)
			}
		}
	}
}

func logStats(e *erosion.CPUEroder) {
	totals := e.Grid().Totals()
	stats := e.Grid().Stats()
	log.Printf("iteration=%d running=%v terrain=%.3f water=%.3f sediment=%.3f height=[%.3f,%.3f] depth=[%.3f,%.3f]",
		e.Iterations(), e.IsRunning(), totals.Terrain, totals.Water, totals.Sediment,
		stats.Terrain.Min, stats.Terrain.Max, stats.Water.Min, stats.Water.Max)
}

func syncMesh(plane *core.Plane, e *erosion.CPUEroder) {
	if plane == nil {
		return
	}
	if err := plane.Construct(e.Grid().Heightmap); err != nil {
		log.Println("mesh update failed:", err)
	}
}
