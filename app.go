package skinplay

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

type Module interface {
	Install(app *App, cmd *Commands)
}

type App struct {
	stateful           bool
	stateTransitioning bool
	started            bool
	stopped            bool
	initialState       State
	finalState         State
	nextState          State
	state              State
	stages             []Stage
	systems            map[string]map[State]map[statePhase][]systemFn
	systemsStateless   map[string][]systemFn
	resources          map[reflect.Type]any
}

func (app *App) Commands() *Commands {
	return &Commands{
		app: app,
	}
}

// State returns the current app state. Stateless apps always report the zero state.
func (app *App) State() State {
	return app.state
}

// Step runs a single frame: the frame delta is published on the Time resource
// (when installed) and every stage runs in order.
func (app *App) Step(deltaMs float64) {
	if !app.started {
		app.started = true
		if app.stateful {
			app.state = app.initialState
			app.callSystems(app.state, enter)
		}
	}

	if t, ok := GetResource[Time](app); ok {
		t.advance(deltaMs)
	}

	app.callSystems(app.state, execute)

	if app.stateful && app.stateTransitioning {
		app.stateTransitioning = false
		app.executeChangeState(app.nextState)
	}
}

// Stop makes Run return after the current frame.
func (app *App) Stop() {
	app.stopped = true
}

// Run hands the frame loop to the scheduler; it returns when the scheduler stops
// issuing frames or Stop is called.
func (app *App) Run(ctx context.Context, scheduler Scheduler) error {
	if app.stateful {
		app.Logger().Infof("Running in stateful mode (%v -> %v)", app.initialState, app.finalState)
	} else {
		app.Logger().Infof("Running in stateless mode")
	}

	err := scheduler.Run(ctx, func(deltaMs float64) bool {
		app.Step(deltaMs)
		return !app.stopped
	})

	if app.stateful && app.started {
		app.callSystems(app.state, exit)
	}
	return err
}

func (app *App) callSystems(state State, phase statePhase) {
	for _, stage := range app.stages {
		// stateless systems run on every execute, before the stateful ones
		if phase == execute {
			for _, system := range app.systemsStateless[stage.Name] {
				app.callSystem(system)
			}
		}

		if !app.stateful {
			continue
		}
		if systemsInStage, ok := app.systems[stage.Name]; ok {
			if systemsInState, ok := systemsInStage[state]; ok {
				for _, system := range systemsInState[phase] {
					app.callSystem(system)
				}
			}
		}
	}
}

func (app *App) changeState(newState State) {
	app.nextState = newState
	app.stateTransitioning = true
}

func (app *App) executeChangeState(newState State) {
	app.callSystems(app.state, exit)
	app.state = newState
	app.callSystems(app.state, enter)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// GetResource returns the resource of type T installed on the app.
func GetResource[T any](app *App) (*T, bool) {
	res, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	typed, ok := res.(*T)
	return typed, ok
}

var typeOfCommands = reflect.TypeOf(Commands{})

func (app *App) callSystem(system systemFn) {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())

	for i := 0; i < systemType.NumIn(); i++ {
		argType := systemType.In(i)
		underlyingType := argType.Elem()

		if underlyingType == typeOfCommands {
			args[i] = reflect.ValueOf(&Commands{app: app})
		} else if resource, argIsResource := app.resources[underlyingType]; argIsResource {
			args[i] = reflect.ValueOf(resource)
		} else {
			msg := fmt.Sprintf("Unable to resolve System dependency.\nSystem: %s\nSystem type: %s\nDependency: %s",
				runtime.FuncForPC(systemValue.Pointer()).Name(),
				fmt.Sprint(systemType),
				fmt.Sprint(argType),
			)
			app.Logger().Errorf("%s", msg)
			panic(msg)
		}
	}
	systemValue.Call(args)
}
