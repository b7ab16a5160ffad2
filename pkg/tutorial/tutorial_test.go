package tutorial_test

import (
	"strings"
	"testing"

	"github.com/hellostack/hellostack/pkg/tutorial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderKeepsStepOrder(t *testing.T) {
	steps, err := tutorial.Render(tutorial.DefaultData())
	require.NoError(t, err)

	require.Len(t, steps, 4)
	assert.Equal(t, "Part 1: The Database (Supabase)", steps[0].Title)
	assert.Equal(t, "Part 2: The Backend (Node.js & Render)", steps[1].Title)
	assert.Equal(t, "Part 3: The Frontend (React & Vercel)", steps[2].Title)
	assert.Equal(t, "Part 4: Deploy Your Own Frontend", steps[3].Title)

	for _, s := range steps {
		assert.NotEmpty(t, s.Icon)
		assert.NotEmpty(t, s.Blocks)
	}
}

func TestRenderInlinesCodeSamples(t *testing.T) {
	steps, err := tutorial.Render(tutorial.DefaultData())
	require.NoError(t, err)

	var codes []string
	for _, b := range steps[0].Blocks {
		if b.Kind == tutorial.BlockCode {
			codes = append(codes, b.Code)
		}
	}

	require.Len(t, codes, 2)
	assert.Contains(t, codes[0], "CREATE TABLE messages")
	assert.Contains(t, codes[1], "VALUES (1, 'Hello World');")
}

func TestRenderUsesBackendURL(t *testing.T) {
	data := tutorial.DefaultData()

	steps, err := tutorial.Render(data)
	require.NoError(t, err)
	assert.Contains(t, strings.Join(steps[2].Blocks[1].Items, "\n"), "https://your-app-name.onrender.com")

	data.BackendURL = "https://my-app.onrender.com"
	steps, err = tutorial.Render(data)
	require.NoError(t, err)
	assert.Contains(t, steps[2].Blocks[1].Items[0], "hellostack probe https://my-app.onrender.com")
}

func TestRenderDoesNotMutateSteps(t *testing.T) {
	_, err := tutorial.Render(tutorial.Data{BackendURL: "https://my-app.onrender.com"})
	require.NoError(t, err)

	raw := tutorial.Steps()
	assert.Contains(t, raw[2].Blocks[1].Items[0], "{{ .BackendURL")
}

func TestSample(t *testing.T) {
	data := tutorial.DefaultData()
	data.ProjectName = "my-backend"

	pkg, err := tutorial.Sample("package.json", data)
	require.NoError(t, err)
	assert.Contains(t, pkg, `"name": "my-backend"`)

	index, err := tutorial.Sample("index.js", data)
	require.NoError(t, err)
	assert.Contains(t, index, "app.get('/api/hello'")
	assert.Contains(t, index, "app.use(cors());")

	_, err = tutorial.Sample("missing.txt", data)
	assert.Error(t, err)
}

func TestSampleNames(t *testing.T) {
	assert.Equal(t, []string{"index.js", "package.json", "schema.sql", "seed.sql"}, tutorial.SampleNames())
}
