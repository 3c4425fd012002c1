package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	chimeRate = beep.SampleRate(44100)
	chimeFreq = 880
	chimeLen  = 150 * time.Millisecond
)

// chime plays a short tone and waits for it to finish.
// Audio errors are logged and otherwise ignored.
func chime() {
	if err := speaker.Init(chimeRate, chimeRate.N(time.Second/10)); err != nil {
		log.Printf("audio: %v", err)
		return
	}
	defer speaker.Close()

	tone, err := generators.SineTone(chimeRate, chimeFreq)
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}
	done := make(chan bool)
	speaker.Play(beep.Seq(
		beep.Take(chimeRate.N(chimeLen), tone),
		beep.Callback(func() { close(done) }),
	))
	<-done
}
