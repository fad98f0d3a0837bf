package main

import (
	"io"
	"log"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/matst80/energy-explorer/pkg/explorer"
)

// jsonOutput renders every view as one json line on w.
type jsonOutput struct {
	w io.Writer
}

type message struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type averagesMessage struct {
	explorer.AveragesView
	Display map[string]string `json:"values"`
}

func (o *jsonOutput) write(kind string, data any) {
	line, err := sonic.Marshal(message{Type: kind, Data: data})
	if err != nil {
		log.Printf("could not encode %s: %v", kind, err)
		return
	}
	line = append(line, '\n')
	if _, err = o.w.Write(line); err != nil {
		log.Printf("could not write %s: %v", kind, err)
	}
}

func (o *jsonOutput) RenderTable(v explorer.TableView) {
	o.write("table", v)
}

func (o *jsonOutput) RenderMap(v explorer.MapView) {
	o.write("map", v)
}

func (o *jsonOutput) RenderChart(v explorer.ChartView) {
	o.write("chart", v)
}

func (o *jsonOutput) RenderAverages(v explorer.AveragesView) {
	o.write("averages", averagesMessage{AveragesView: v, Display: v.Display()})
}

func (o *jsonOutput) RenderAbout(v explorer.AboutView) {
	o.write("about", v)
}

func (o *jsonOutput) ReplaceURL(u *url.URL) {
	o.write("url", u.String())
}

func (o *jsonOutput) Error(err error) {
	o.write("error", err.Error())
}
