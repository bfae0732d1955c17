package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDefaults() Config {
	return Config{
		"brand": Config{
			"name":      "Store",
			"logoColor": "bg-blue-600",
			"logo": Config{
				"src":  "/logo.svg",
				"size": Config{"w": 32, "h": 32},
			},
		},
		"navigation": []interface{}{
			Config{"label": "Home", "href": "/"},
			Config{"label": "Shop", "href": "/shop"},
		},
		"sticky": true,
	}
}

func TestMergeOverridesScalarsAndKeepsSiblings(t *testing.T) {
	got := Merge(sampleDefaults(), Config{"brand": Config{"name": "Acme"}})

	brand := got["brand"].(Config)
	assert.Equal(t, "Acme", brand["name"])
	assert.Equal(t, "bg-blue-600", brand["logoColor"])
	assert.Equal(t, true, got["sticky"])
	assert.Len(t, got["navigation"], 2)
}

func TestMergeDeeplyNested(t *testing.T) {
	got := Merge(sampleDefaults(), Config{
		"brand": Config{"logo": Config{"size": Config{"w": 64}}},
	})

	v, ok := Lookup(got, "brand.logo.size.w")
	require.True(t, ok)
	assert.Equal(t, 64, v)

	v, ok = Lookup(got, "brand.logo.size.h")
	require.True(t, ok)
	assert.Equal(t, 32, v)

	v, ok = Lookup(got, "brand.logo.src")
	require.True(t, ok)
	assert.Equal(t, "/logo.svg", v)

	v, ok = Lookup(got, "brand.name")
	require.True(t, ok)
	assert.Equal(t, "Store", v)
}

func TestMergeReplacesSequences(t *testing.T) {
	got := Merge(Config{"items": []interface{}{1, 2, 3}}, Config{"items": []interface{}{9}})
	assert.Equal(t, []interface{}{9}, got["items"])

	got = Merge(sampleDefaults(), Config{"navigation": []interface{}{Config{"label": "Only"}}})
	assert.Equal(t, []interface{}{Config{"label": "Only"}}, got["navigation"])
}

func TestMergeNilOverwrites(t *testing.T) {
	got := Merge(sampleDefaults(), Config{"sticky": nil})
	v, ok := got["sticky"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestMergeAddsAbsentMapsAsCopies(t *testing.T) {
	promo := Config{"text": "Free shipping"}
	got := Merge(sampleDefaults(), Config{"promo": promo})

	got["promo"].(Config)["text"] = "changed"
	assert.Equal(t, "Free shipping", promo["text"])
}

func TestMergeMapOverNonMapKeepsTarget(t *testing.T) {
	target := Config{"cta": "Buy", "gone": nil, "tags": []interface{}{"a"}}
	got := Merge(target, Config{
		"cta":  Config{"label": "Buy now"},
		"gone": Config{"a": 1},
		"tags": Config{"0": "b"},
	})

	assert.Equal(t, "Buy", got["cta"])
	v, ok := got["gone"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, []interface{}{"a"}, got["tags"])
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	d := sampleDefaults()
	o := Config{
		"brand":      Config{"name": "Acme", "logo": Config{"size": Config{"h": 10}}},
		"navigation": []interface{}{Config{"label": "X"}},
	}
	dSnap, oSnap := Clone(d), Clone(o)

	got := Merge(d, o)
	got["brand"].(Config)["logoColor"] = "bg-red-600"
	got["navigation"].([]interface{})[0].(Config)["label"] = "mutated"

	assert.Equal(t, dSnap, d)
	assert.Equal(t, oSnap, o)
}

func TestMergeIdempotent(t *testing.T) {
	d := sampleDefaults()
	o := Config{"brand": Config{"name": "Acme"}, "navigation": []interface{}{}}

	once := Merge(d, o)
	assert.Equal(t, once, Merge(once, o))
}

func TestMergeDisjointOverridesCommute(t *testing.T) {
	d := sampleDefaults()
	o1 := Config{"brand": Config{"name": "Acme"}}
	o2 := Config{"brand": Config{"logo": Config{"src": "/acme.png"}}, "sticky": false}

	assert.Equal(t, Merge(Merge(d, o1), o2), Merge(Merge(d, o2), o1))
}

func TestMergeValueRequiresMaps(t *testing.T) {
	d := sampleDefaults()

	assert.Equal(t, d, MergeValue(d, []interface{}{1, 2}))
	assert.Equal(t, d, MergeValue(d, "header2"))
	assert.Equal(t, d, MergeValue(d, nil))

	got := MergeValue(d, map[string]interface{}{"sticky": false}).(Config)
	assert.Equal(t, false, got["sticky"])
}

func TestMergeAcceptsYAMLMaps(t *testing.T) {
	got := Merge(sampleDefaults(), Config{
		"brand": map[interface{}]interface{}{"name": "Yaml Co"},
	})
	v, _ := Lookup(got, "brand.name")
	assert.Equal(t, "Yaml Co", v)
	v, _ = Lookup(got, "brand.logoColor")
	assert.Equal(t, "bg-blue-600", v)
}

func TestLookup(t *testing.T) {
	d := sampleDefaults()

	v, ok := Lookup(d, "navigation.1.href")
	require.True(t, ok)
	assert.Equal(t, "/shop", v)

	_, ok = Lookup(d, "navigation.5.href")
	assert.False(t, ok)
	_, ok = Lookup(d, "brand.name.first")
	assert.False(t, ok)
	_, ok = Lookup(d, "missing")
	assert.False(t, ok)
}
