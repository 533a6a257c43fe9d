package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/tiksnap/tiksnap/pkg/domain/model"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Mode
		wantErr bool
	}{
		{name: "image", input: "image", want: model.ModeImage},
		{name: "audio", input: "audio", want: model.ModeAudio},
		{name: "empty", input: "", wantErr: true},
		{name: "case sensitive", input: "Audio", wantErr: true},
		{name: "unknown", input: "video", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseMode(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, got).Equal(tt.want)
		})
	}
}

func TestMode_Other(t *testing.T) {
	gt.Value(t, model.ModeImage.Other()).Equal(model.ModeAudio)
	gt.Value(t, model.ModeAudio.Other()).Equal(model.ModeImage)
}
