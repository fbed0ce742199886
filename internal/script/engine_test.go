package script

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/navtree/internal/app/navigator"
	"github.com/bnema/navtree/internal/app/sample"
	"github.com/bnema/navtree/internal/domain/entity"
)

func newScriptedNavigator(t *testing.T) *navigator.Navigator {
	t.Helper()

	counter := 0
	generateKey := func() entity.NodeKey {
		counter++
		return entity.NodeKey(fmt.Sprintf("s%d", counter))
	}
	return navigator.New(navigator.Config{
		Scopes:      sample.Scopes(),
		Containers:  sample.Containers(),
		DeepLinks:   sample.DeepLinks(),
		InitialRoot: sample.InitialTree(generateKey),
		GenerateKey: generateKey,
	})
}

func TestEngineRunsFlow(t *testing.T) {
	nav := newScriptedNavigator(t)
	engine, err := NewEngine(context.Background(), nav)
	require.NoError(t, err)

	err = engine.Run(`
		if (!navigate("app://home/7")) { throw "deep link failed" }
		if (activeRoute() !== "home/{id}") { throw "unexpected route " + activeRoute() }
		complete()
		if (!canGoBack()) { throw "expected back to be available" }
		if (!back()) { throw "back failed" }
		complete()
	`)
	require.NoError(t, err)
	assert.Equal(t, "home", nav.CurrentDestination().Current().Route)
}

func TestEngineSeekBinding(t *testing.T) {
	nav := newScriptedNavigator(t)
	engine, err := NewEngine(context.Background(), nav)
	require.NoError(t, err)

	require.NoError(t, engine.Run(`seek("fade", 0.5); progress(0.75)`))
	ts := nav.TransitionState().Current()
	assert.Equal(t, navigator.PhaseSeeking, ts.Phase)
	assert.Equal(t, 0.75, ts.Progress)
}

func TestEngineSwitchTabBinding(t *testing.T) {
	nav := newScriptedNavigator(t)
	engine, err := NewEngine(context.Background(), nav)
	require.NoError(t, err)

	require.NoError(t, engine.Run(`switchTab(2)`))
	assert.Equal(t, sample.KindProfileRoot, nav.CurrentDestination().Current().Kind)
}

func TestEngineReportsScriptErrors(t *testing.T) {
	nav := newScriptedNavigator(t)
	engine, err := NewEngine(context.Background(), nav)
	require.NoError(t, err)

	assert.Error(t, engine.Run(`throw new Error("boom")`))
	assert.Error(t, engine.Run(`this is not javascript`))
}
