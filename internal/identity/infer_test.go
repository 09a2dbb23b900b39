package identity

import "testing"

func TestInferNonBotUnchanged(t *testing.T) {
	got := Infer("kat", "C0AC7G548CV", "Dan (via Claude.ai): hello")
	if got != "kat" {
		t.Fatalf("non-bot name altered: %q", got)
	}
}

func TestInferSignatureBeatsChannelMapping(t *testing.T) {
	// Kat's channel, but Dan's signature in the text: signature wins.
	got := Infer(RelayBotName, "C0AC7G548CV", "Dan (via Claude.ai): reviewed the PR")
	if got != "Dan" {
		t.Fatalf("Infer = %q, want Dan", got)
	}
}

func TestInferChannelMapping(t *testing.T) {
	cases := map[string]string{
		"C0ACEGVT7CL": "Mat",
		"C0AC7G548CV": "Kat",
		"C0ABVFJPM9D": "Sam",
	}
	for channel, want := range cases {
		if got := Infer(RelayBotName, channel, "deploy finished"); got != want {
			t.Errorf("Infer(channel %s) = %q, want %q", channel, got, want)
		}
	}
}

func TestInferTextScanOnUnmappedChannel(t *testing.T) {
	got := Infer(RelayBotName, "C0UNMAPPED", "Sam pushed a fix for the flaky test")
	if got != "Sam" {
		t.Fatalf("Infer = %q, want Sam", got)
	}
}

func TestInferTextScanPriorityOrder(t *testing.T) {
	// Both Mat and Dan appear; Mat comes first in the priority order.
	got := Infer(RelayBotName, "C0UNMAPPED", "Dan asked Mat to review")
	if got != "Mat" {
		t.Fatalf("Infer = %q, want Mat", got)
	}
}

func TestInferFallsBackToBotName(t *testing.T) {
	got := Infer(RelayBotName, "C0UNMAPPED", "nightly build passed")
	if got != RelayBotName {
		t.Fatalf("Infer = %q, want %q", got, RelayBotName)
	}
}

func TestStrategiesIndividually(t *testing.T) {
	if name, ok := signatureStrategy("", "Dan (via Claude.ai): hi"); !ok || name != "Dan" {
		t.Fatalf("signatureStrategy = %q, %v", name, ok)
	}
	if _, ok := signatureStrategy("", "plain message"); ok {
		t.Fatal("signatureStrategy matched plain text")
	}
	if name, ok := channelStrategy("C0ACEGVT7CL", ""); !ok || name != "Mat" {
		t.Fatalf("channelStrategy = %q, %v", name, ok)
	}
	if _, ok := channelStrategy("C0UNKNOWN", ""); ok {
		t.Fatal("channelStrategy matched unknown channel")
	}
	if name, ok := mentionStrategy("", "ping Kat about the migration"); !ok || name != "Kat" {
		t.Fatalf("mentionStrategy = %q, %v", name, ok)
	}
	if _, ok := mentionStrategy("", "nobody here"); ok {
		t.Fatal("mentionStrategy matched text without member names")
	}
}
