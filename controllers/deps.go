package controllers

import (
	"civicguard-be/agent"
	"civicguard-be/ai"
	"civicguard-be/geo"
	"civicguard-be/location"
	"civicguard-be/store"
)

// Deps are the shared services every handler reaches for.
type Deps struct {
	Store      *store.Store
	Locations  *location.Service
	Boundaries *geo.Boundaries
	Sessions   *agent.Manager
	Assistant  *ai.Assistant
}

var (
	appStore   *store.Store
	locations  *location.Service
	boundaries *geo.Boundaries
	sessions   *agent.Manager
	assistant  *ai.Assistant
)

// Init wires the handler package to its services. Call once at startup
// before registering routes.
func Init(d Deps) {
	appStore = d.Store
	locations = d.Locations
	boundaries = d.Boundaries
	sessions = d.Sessions
	assistant = d.Assistant
}
