package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/matst80/energy-explorer/pkg/explorer"
	"github.com/matst80/energy-explorer/pkg/types"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	errQuit           = errors.New("quit")
)

type session struct {
	ctrl *explorer.Controller
	out  *jsonOutput
}

type command func(s *session)

const help = `commands:
  mode facilities|production|trade|about
  map
  sort category|power|municipality|canton|start|location
  page N
  power MIN MAX
  search TEXT
  toggle DATASET CATEGORY
  select DATASET all|none|NAME[,NAME]
  viewport LAT LON ZOOM
  chart DATASET XMIN XMAX
  reset DATASET
  url
  quit`

func usage(format string) error {
	return fmt.Errorf("%w: %s", ErrUsage, format)
}

func floats(args []string, n int) ([]float64, bool) {
	if len(args) != n {
		return nil, false
	}
	ret := make([]float64, n)
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, false
		}
		ret[i] = f
	}
	return ret, true
}

func dataset(name string) (types.Dataset, error) {
	d := types.Dataset(strings.ToLower(name))
	if !d.Valid() {
		return "", fmt.Errorf("%w: dataset %q", ErrUnknownCommand, name)
	}
	return d, nil
}

// parseCommand turns one input line into a controller call. Category names
// may contain spaces, so they take the rest of the line.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	rest := func(n int) string {
		text := strings.TrimSpace(line)
		for range n {
			i := strings.IndexFunc(text, unicode.IsSpace)
			if i < 0 {
				return ""
			}
			text = strings.TrimSpace(text[i:])
		}
		return text
	}

	switch name {
	case "quit", "exit":
		return nil, errQuit
	case "help":
		return func(s *session) { s.out.write("help", help) }, nil
	case "mode":
		if len(args) != 1 {
			return nil, usage("mode NAME")
		}
		mode := types.Mode(strings.ToLower(args[0]))
		return func(s *session) { s.ctrl.SetMode(mode) }, nil
	case "map":
		return func(s *session) { s.ctrl.ToggleMap() }, nil
	case "sort":
		if len(args) != 1 {
			return nil, usage("sort COLUMN")
		}
		column := types.SortColumn(strings.ToLower(args[0]))
		return func(s *session) { s.ctrl.ClickSort(column) }, nil
	case "page":
		if len(args) != 1 {
			return nil, usage("page N")
		}
		page, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, usage("page N")
		}
		return func(s *session) { s.ctrl.SetPage(page) }, nil
	case "power":
		v, ok := floats(args, 2)
		if !ok {
			return nil, usage("power MIN MAX")
		}
		return func(s *session) { s.ctrl.SetPowerRange(v[0], v[1]) }, nil
	case "search":
		text := rest(1)
		return func(s *session) { s.ctrl.Search(text) }, nil
	case "toggle":
		if len(args) < 2 {
			return nil, usage("toggle DATASET CATEGORY")
		}
		d, err := dataset(args[0])
		if err != nil {
			return nil, err
		}
		category := rest(2)
		return func(s *session) { s.ctrl.ToggleCategory(d, category) }, nil
	case "select":
		if len(args) < 2 {
			return nil, usage("select DATASET all|none|NAME[,NAME]")
		}
		d, err := dataset(args[0])
		if err != nil {
			return nil, err
		}
		switch what := rest(2); strings.ToLower(what) {
		case "all":
			return func(s *session) { s.ctrl.SelectAll(d) }, nil
		case "none":
			return func(s *session) { s.ctrl.SelectNone(d) }, nil
		default:
			names := strings.Split(what, ",")
			for i := range names {
				names[i] = strings.TrimSpace(names[i])
			}
			return func(s *session) { s.ctrl.SetCategories(d, names) }, nil
		}
	case "viewport":
		v, ok := floats(args, 3)
		if !ok {
			return nil, usage("viewport LAT LON ZOOM")
		}
		return func(s *session) { s.ctrl.SetMapViewport(v[0], v[1], v[2]) }, nil
	case "chart":
		if len(args) != 3 {
			return nil, usage("chart DATASET XMIN XMAX")
		}
		d, err := dataset(args[0])
		if err != nil {
			return nil, err
		}
		v, ok := floats(args[1:], 2)
		if !ok {
			return nil, usage("chart DATASET XMIN XMAX")
		}
		return func(s *session) { s.ctrl.SetChartViewport(d, v[0], v[1]) }, nil
	case "reset":
		if len(args) != 1 {
			return nil, usage("reset DATASET")
		}
		d, err := dataset(args[0])
		if err != nil {
			return nil, err
		}
		return func(s *session) { s.ctrl.ResetChartViewport(d) }, nil
	case "url":
		return func(s *session) {
			s.ctrl.Flush()
			s.out.ReplaceURL(s.ctrl.URL())
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}
