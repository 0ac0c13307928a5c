package balloons

import (
	"errors"
	"testing"
)

func TestCacheLoadsOnce(t *testing.T) {
	loads := 0
	c := NewCache(func(key string) (int, error) {
		loads++
		return len(key), nil
	})

	for i := 0; i < 3; i++ {
		v, err := c.Get("balloon")
		if err != nil {
			t.Fatal(err)
		}
		if v != 7 {
			t.Errorf("Get = %d, want 7", v)
		}
	}
	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCacheDoesNotKeepFailures(t *testing.T) {
	fail := true
	c := NewCache(func(key string) (string, error) {
		if fail {
			return "", errors.New("not yet")
		}
		return key + "!", nil
	})

	if _, err := c.Get("a"); err == nil {
		t.Fatal("expected load error")
	}
	if c.Len() != 0 {
		t.Errorf("failed load cached, Len = %d", c.Len())
	}

	fail = false
	v, err := c.Get("a")
	if err != nil || v != "a!" {
		t.Errorf("Get after recovery = %q, %v", v, err)
	}
}
