// Package loader provides the feature loading system.
//
// Each HTTP module (collection, planner, integrity) implements Feature and is
// registered with a Manager at startup. LoadAll mounts the enabled ones:
//
//	mgr := loader.NewManager()
//	mgr.Register(collection.NewFeature(svc, logg))
//	loaded, err := mgr.LoadAll(app)
package loader
