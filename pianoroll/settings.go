package main

import (
	"fmt"
	"reflect"
	"strconv"
)

var settingsPath = "config/settings.csv"

type settings struct {
	ColorBg           uint32
	ColorFg           uint32
	ColorBeat         uint32
	ColorMeasure      uint32
	ColorKeyRow       uint32
	ColorNote         uint32
	ColorSelect       uint32
	ColorPlayPos      uint32
	ColorRuler        uint32
	Font              string
	FontSize          int
	KeyHeight         int // pixels per key row
	PixelsPerBeat     int
	DefaultVelocity   int
	DefaultDivision   int
	DefaultNoteDiv    int // new-note duration in beat divisions: beat/n
	MessageDuration   int
	MidiOutPortNumber int
	WindowHeight      int
	WindowWidth       int
}

// settings used when the config file is missing records
func defaultSettings() *settings {
	return &settings{
		ColorBg:           0x1e1e28ff,
		ColorFg:           0xdcdcdcff,
		ColorBeat:         0x32323cff,
		ColorMeasure:      0x50505aff,
		ColorKeyRow:       0x28283cff,
		ColorNote:         0x46b4e6ff,
		ColorSelect:       0xe6a046ff,
		ColorPlayPos:      0x3c4650ff,
		ColorRuler:        0x282832ff,
		Font:              "RobotoMono-Regular.ttf",
		FontSize:          12,
		KeyHeight:         10,
		PixelsPerBeat:     96,
		DefaultVelocity:   100,
		DefaultDivision:   4,
		DefaultNoteDiv:    4,
		MessageDuration:   3,
		MidiOutPortNumber: -1,
		WindowHeight:      600,
		WindowWidth:       960,
	}
}

// load settings from the config file, falling back to defaults
func loadSettings(warn func(string)) *settings {
	s := defaultSettings()
	if records, err := readCSV(settingsPath); err == nil {
		s.applyRecords(records, warn)
	} else {
		warn(err.Error())
	}
	return s
}

// apply CSV records of (field, value) pairs by reflection
func (s *settings) applyRecords(records [][]string, warn func(string)) {
	v := reflect.ValueOf(s).Elem()
	for _, rec := range records {
		success := false
		if len(rec) == 2 {
			if field := v.FieldByName(rec[0]); field.IsValid() {
				switch field.Kind() {
				case reflect.Uint32:
					if len(rec[1]) > 1 {
						if i, err := strconv.ParseUint(rec[1][1:], 16, 32); err == nil {
							field.SetUint(uint64(i))
							success = true
						}
					}
				case reflect.Int:
					if i, err := strconv.Atoi(rec[1]); err == nil {
						field.SetInt(int64(i))
						success = true
					}
				case reflect.String:
					field.SetString(rec[1])
					success = true
				}
			}
		}
		if !success {
			warn(fmt.Sprintf("bad settings record: %v", rec))
		}
	}
}
