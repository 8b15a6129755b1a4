package params

import "testing"

func TestDefaultWithinRanges(t *testing.T) {
	p := Default()
	want := p
	p.Clamp()
	if p != want {
		t.Fatalf("defaults changed by Clamp: got %+v, want %+v", p, want)
	}
}

func TestClampPullsValuesIntoRange(t *testing.T) {
	p := Params{
		Mode:    "bogus",
		LFORate: 100,
		Depth:   -1,
		Tempo:   10,
		Attack:  0,
		Decay:   5,
		Q:       0.5,
	}
	p.Clamp()
	want := Params{
		Mode:    ModeLFO,
		LFORate: 10,
		Depth:   0,
		Tempo:   40,
		Attack:  0.01,
		Decay:   2,
		Q:       1,
	}
	if p != want {
		t.Fatalf("clamped = %+v, want %+v", p, want)
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"lfo", ModeLFO, false},
		{"envelope", ModeEnvelope, false},
		{"adsr", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMode(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("mode = %q, want %q", got, tc.want)
			}
		})
	}
}
