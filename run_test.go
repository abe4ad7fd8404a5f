package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient replays canned replies in order and records prompts.
type fakeClient struct {
	replies []string
	errs    []error
	prompts []string
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	i := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	return f.replies[i], nil
}

// fakePacer counts how often the orchestrator paused.
type fakePacer struct {
	waits int
}

func (f *fakePacer) Wait(context.Context) error {
	f.waits++
	return nil
}

func makeGroups(t *testing.T, names ...string) []Group {
	t.Helper()
	root := t.TempDir()
	groups := make([]Group, 0, len(names))
	for _, name := range names {
		path := filepath.Join(root, name+".jsx")
		require.NoError(t, os.WriteFile(path, []byte("gql` query X { id } `"), 0644))
		groups = append(groups, Group{Name: name, Files: []string{path}})
	}
	return groups
}

func TestAnalyzeGroups_OneCallPerGroupDelayBetween(t *testing.T) {
	client := &fakeClient{replies: []string{
		`{"queries":[],"mutations":[]}`,
		`{"queries":[],"mutations":[]}`,
		`{"queries":[],"mutations":[]}`,
	}}
	pacer := &fakePacer{}
	runner := NewRunner(client, pacer, nil, 0)

	results, err := runner.AnalyzeGroups(context.Background(), makeGroups(t, "a", "b", "c"))

	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Len(t, client.prompts, 3)
	// never after the last group
	assert.Equal(t, 2, pacer.waits)
	assert.Equal(t, 3, runner.Summary().Calls)
}

func TestAnalyzeGroups_AggregatesCountsAndNames(t *testing.T) {
	client := &fakeClient{replies: []string{
		"```json\n" + `{"queries":[{"name":"GetHome"}],"mutations":[]}` + "\n```",
	}}
	runner := NewRunner(client, nil, nil, 0)

	results, err := runner.AnalyzeGroups(context.Background(), makeGroups(t, "home"))

	require.NoError(t, err)
	require.Len(t, results, 1)
	res := results[0]
	assert.Equal(t, "home", res.Page)
	require.NotNil(t, res.Analysis)
	assert.Equal(t, []Operation{{Name: "GetHome"}}, res.Analysis.Queries)
	assert.Empty(t, res.Analysis.Mutations)
	assert.Equal(t, 1, res.QueryCount)
	assert.Equal(t, 0, res.MutationCount)
	assert.Empty(t, res.Error)
}

func TestAnalyzeGroups_NonJSONReplyBecomesErrorResult(t *testing.T) {
	client := &fakeClient{replies: []string{
		"I cannot answer",
		`{"queries":[{"name":"GetB"}],"mutations":[]}`,
	}}
	runner := NewRunner(client, nil, nil, 0)

	results, err := runner.AnalyzeGroups(context.Background(), makeGroups(t, "a", "b"))

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.NotEmpty(t, results[0].Error)
	assert.Nil(t, results[0].Analysis)
	// the run continued past the failure
	assert.Empty(t, results[1].Error)
	assert.Equal(t, 1, results[1].QueryCount)
	assert.Equal(t, 1, runner.Summary().Errored)
}

func TestAnalyzeGroups_TransportErrorBecomesErrorResult(t *testing.T) {
	client := &fakeClient{
		replies: []string{"", `{"queries":[],"mutations":[]}`},
		errs:    []error{errors.New("analysis request failed: 429 Too Many Requests"), nil},
	}
	runner := NewRunner(client, nil, nil, 0)

	results, err := runner.AnalyzeGroups(context.Background(), makeGroups(t, "a", "b"))

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Error, "429")
	assert.Empty(t, results[1].Error)
}

func TestAnalyzeGroups_PromptCarriesGroupNameAndFiles(t *testing.T) {
	client := &fakeClient{replies: []string{`{"queries":[],"mutations":[]}`}}
	runner := NewRunner(client, nil, nil, 0)

	groups := makeGroups(t, "checkout")
	_, err := runner.AnalyzeGroups(context.Background(), groups)

	require.NoError(t, err)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], `"checkout"`)
	assert.Contains(t, client.prompts[0], "File: "+groups[0].Files[0])
}

func TestAnalyzeInventory_DiscoveryThenPerPage(t *testing.T) {
	client := &fakeClient{replies: []string{
		`[{"path":"/home","component":"Home","description":"landing"},{"path":"/about","component":"About","description":"about"}]`,
		`{"queries":[{"name":"GetHome"}],"mutations":[]}`,
		`{"queries":[],"mutations":[{"name":"SendFeedback"}]}`,
	}}
	pacer := &fakePacer{}
	runner := NewRunner(client, pacer, nil, 0)

	pages, results, err := runner.AnalyzeInventory(context.Background(), "the whole app source")

	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "/home", pages[0].Path)
	assert.Equal(t, "Home", pages[0].Component)

	require.Len(t, results, 2)
	assert.Equal(t, "/home", results[0].Page)
	assert.Equal(t, 1, results[0].QueryCount)
	assert.Equal(t, "/about", results[1].Page)
	assert.Equal(t, 1, results[1].MutationCount)

	// one discovery call plus one call per page, a pause before each page call
	assert.Len(t, client.prompts, 3)
	assert.Equal(t, 2, pacer.waits)
}

func TestAnalyzeInventory_DiscoveryFailureAborts(t *testing.T) {
	client := &fakeClient{replies: []string{"not a json inventory"}}
	runner := NewRunner(client, nil, nil, 0)

	_, _, err := runner.AnalyzeInventory(context.Background(), "blob")
	assert.Error(t, err)
}
