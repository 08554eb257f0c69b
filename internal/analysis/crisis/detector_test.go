package crisis

import (
	"strings"
	"testing"
)

func TestDetectEveryKeywordAnyCase(t *testing.T) {
	for _, keyword := range Keywords {
		padded := "well... " + strings.ToUpper(keyword) + " maybe"
		if !Detect(padded) {
			t.Fatalf("expected detection for keyword %q", keyword)
		}
	}
}

func TestDetectEmptyAndBenign(t *testing.T) {
	if Detect("") {
		t.Fatal("empty input must not flag")
	}
	if Detect("I had a lovely walk in the park today") {
		t.Fatal("benign input must not flag")
	}
}

func TestDetectKeywordInsideSentence(t *testing.T) {
	if !Detect("honestly I just want to end it all sometimes") {
		t.Fatal("expected detection for embedded keyword")
	}
}

func TestDetectReturnsBooleanNotCount(t *testing.T) {
	// Multiple keywords in one input still yield a plain true.
	if !Detect("feeling suicidal, thinking about suicide") {
		t.Fatal("expected detection")
	}
}
