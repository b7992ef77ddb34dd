package hashmap

import "testing"

func TestHashEmptyStringIsSeed(t *testing.T) {
	if got := Hash(""); got != 5381 {
		t.Errorf("Hash(\"\") = %d, want 5381", got)
	}
}

func TestHashKnownValues(t *testing.T) {
	// 5381*33 + 'a' = 177670, 177670*33 + 'b' = 5863208
	cases := []struct {
		key  string
		want uint64
	}{
		{"", 5381},
		{"a", 177670},
		{"ab", 5863208},
	}

	for _, c := range cases {
		if got := Hash(c.key); got != c.want {
			t.Errorf("Hash(%q) = %d, want %d", c.key, got, c.want)
		}
	}
}

func TestHashDeterministic(t *testing.T) {
	keys := []string{"a", "key", "a longer key with spaces", "\x00\x01\xff"}

	for _, key := range keys {
		first := Hash(key)
		for i := 0; i < 5; i++ {
			if got := Hash(key); got != first {
				t.Errorf("Hash(%q) changed between calls: %d then %d", key, first, got)
			}
		}
	}
}
