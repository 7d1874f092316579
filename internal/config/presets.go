package config

import "sort"

var Presets = map[string]map[string]*Config{
	"quick": {
		"reversed":   {Algorithm: "quick", Input: "9, 8, 7, 6, 5, 4, 3, 2, 1"},
		"sorted":     {Algorithm: "quick", Input: "1, 2, 3, 4, 5, 6, 7, 8"},
		"duplicates": {Algorithm: "quick", Input: "4, 1, 4, 2, 4, 1, 3"},
	},
	"merge": {
		"classic": {Algorithm: "merge", Input: "38, 27, 43, 3, 9, 82, 10"},
		"ties":    {Algorithm: "merge", Input: "2, 1, 2, 1, 2"},
	},
	"heap": {
		"classic": {Algorithm: "heap", Input: "4, 10, 3, 5, 1"},
		"random":  {Algorithm: "heap", Size: 15, Seed: 7},
	},
	"bubble": {
		"nearly-sorted": {Algorithm: "bubble", Input: "1, 2, 3, 5, 4, 6"},
		"reversed":      {Algorithm: "bubble", Input: "6, 5, 4, 3, 2, 1"},
	},
	"insertion": {
		"classic": {Algorithm: "insertion", Input: "12, 11, 13, 5, 6"},
		"sorted":  {Algorithm: "insertion", Input: "1, 2, 3, 4, 5"},
	},
	"jobs": {
		"classic": {Algorithm: "jobs", Input: `[{id: 1, deadline: 2, profit: 100}, {id: 2, deadline: 1, profit: 19}, {id: 3, deadline: 2, profit: 27}, {id: 4, deadline: 1, profit: 25}, {id: 5, deadline: 3, profit: 15}]`},
		"random":  {Algorithm: "jobs", Size: 8, Seed: 3},
	},
	"knapsack": {
		"classic": {Algorithm: "knapsack", Input: `{capacity: 50, items: [{id: 1, value: 60, weight: 10}, {id: 2, value: 100, weight: 20}, {id: 3, value: 120, weight: 30}]}`},
		"random":  {Algorithm: "knapsack", Size: 8, Seed: 5},
	},
	"activities": {
		"classic": {Algorithm: "activities", Input: `[{id: 1, start: 1, finish: 4}, {id: 2, start: 3, finish: 5}, {id: 3, start: 0, finish: 6}, {id: 4, start: 5, finish: 7}, {id: 5, start: 8, finish: 9}, {id: 6, start: 5, finish: 9}]`},
		"random":  {Algorithm: "activities", Size: 10, Seed: 11},
	},
	"coloring": {
		"lectures": {Algorithm: "coloring", Input: `[{id: 1, start: 9, end: 10.5}, {id: 2, start: 9, end: 12.5}, {id: 3, start: 9, end: 10.5}, {id: 4, start: 11, end: 12.5}, {id: 5, start: 11, end: 14}, {id: 6, start: 13, end: 14.5}]`},
		"random":   {Algorithm: "coloring", Size: 10, Seed: 13},
	},
	"kadane": {
		"classic":      {Algorithm: "kadane", Input: "-2, 1, -3, 4, -1, 2, 1, -5, 4"},
		"all-negative": {Algorithm: "kadane", Input: "-8, -3, -6, -2, -5, -4"},
	},
}

func GetPreset(algorithm, preset string) *Config {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	cfg, ok := algPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(algorithm string) []string {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(algPresets))
	for name := range algPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
