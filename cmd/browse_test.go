package main

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propmarket/internal/analysis"
	"propmarket/internal/types"
)

func TestReadKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []key
	}{
		{"ansi arrows", "\x1b[A\x1b[B", []key{keyUp, keyDown}},
		{"windows arrows", "\xe0H\xe0P\x00\r", []key{keyUp, keyDown, keyEnter}},
		{"vi keys", "kj", []key{keyUp, keyDown}},
		{"enter", "\r\n", []key{keyEnter, keyEnter}},
		{"quit", "q\x03", []key{keyQuit, keyQuit}},
		{"other", "x\x1b[C", []key{keyNone, keyNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bufio.NewReader(strings.NewReader(tt.in))
			var got []key
			for range tt.want {
				k, err := readKey(r)
				require.NoError(t, err)
				got = append(got, k)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadKeyBareEsc(t *testing.T) {
	r := bufio.NewReaderSize(strings.NewReader("\x1b"), 16)
	k, err := readKey(r)
	require.NoError(t, err)
	assert.Equal(t, keyQuit, k)
}

func TestCursor(t *testing.T) {
	c := cursor{n: 3}
	assert.False(t, c.move(keyUp))
	assert.True(t, c.move(keyDown))
	assert.True(t, c.move(keyDown))
	assert.False(t, c.move(keyDown))
	assert.Equal(t, 2, c.selected)
	assert.False(t, c.move(keyEnter))
}

func TestAreaDetail(t *testing.T) {
	table := &types.PropertyTable{Records: []types.PropertyRecord{
		{PostcodeArea: "WS", Price: 400000, NewBuild: "N", Tenure: "F"},
		{PostcodeArea: "WS", Price: 463830, NewBuild: "Y", Tenure: "L"},
		{PostcodeArea: "FY", Price: 1555507, NewBuild: "N", Tenure: "F"},
	}}
	summaries, err := analysis.AreaSummaries(table)
	require.NoError(t, err)
	require.Equal(t, "WS", summaries[1].Area)

	got := areaDetail(table, summaries[1])
	assert.Contains(t, got, "Sales:               2\n")
	assert.Contains(t, got, "Mean price:          £431,915.00\n")
	assert.Contains(t, got, "New builds:          £463,830.00 (1)\n")
	assert.Contains(t, got, "Freehold properties: £400,000.00 (1)\n")

	assert.Equal(t, "WS                                2 sales  mean £431,915.00", listLine(summaries[1]))
}
