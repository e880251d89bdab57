// Package scoutship provides an embeddable scout file ingest agent.
//
// Scoutship watches a directory of DataVolley scout files (.dvw),
// decodes each file into a structured match record, stores the records
// in a local SQLite archive, and optionally ships them in batches to a
// collection service over HTTP.
//
// # Usage
//
// Basic usage:
//
//	agent, err := scoutship.New(scoutship.Config{
//	    ScoutDir:   "/matches/season-2025",
//	    ServiceURL: "https://collect.example.com",
//	    AuthKey:    "secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := agent.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer agent.Stop()
//
// With no ServiceURL, the agent runs offline: files are still decoded
// and archived locally, but nothing is uploaded.
//
// # Events
//
// Register an EventHandler to observe the agent:
//
//	type handler struct {
//	    scoutship.BaseEventHandler
//	}
//
//	func (h *handler) OnFileIngested(e scoutship.FileIngestedEvent) {
//	    fmt.Printf("ingested %s (%s)\n", e.File, e.MatchID)
//	}
//
//	agent, err := scoutship.New(cfg, scoutship.WithEventHandler(&handler{}))
//
// # Plugins
//
// Plugins extend the agent with capabilities that run alongside the
// ingest loop. The configwatcher plugin reloads configuration when the
// config file changes; the archiver plugin compresses old scout files
// once the directory grows past a size threshold.
//
//	agent, err := scoutship.New(cfg,
//	    archiver.WithArchiver(archiver.DefaultConfig()),
//	)
//
// # Version
//
// Current version: 1.0.0
package scoutship
