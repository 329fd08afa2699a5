// Copyright 2026 The kodi-json-rpc authors.
// Licensed under the LGPLv3, see LICENCE file for details.

package rpc_test

import (
	"encoding/json"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/diamondq/kodi-json-rpc/rpc"
)

type requestSuite struct{}

var _ = gc.Suite(&requestSuite{})

// fixedIDSource hands out a predetermined id.
type fixedIDSource string

func (s fixedIDSource) NextID() string {
	return string(s)
}

type fakeModel struct {
	Label string `json:"label"`
}

func (m *fakeModel) ToJSON() (json.RawMessage, error) {
	return json.Marshal(m)
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }

func (*requestSuite) TestEnvelopeFields(c *gc.C) {
	req := rpc.NewRequestWithSource(fixedIDSource("42"), "Application.GetProperties")
	c.Check(req.ID(), gc.Equals, "42")
	c.Check(req.Method(), gc.Equals, "Application.GetProperties")

	data, err := json.Marshal(req)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(data), gc.Equals, `{"jsonrpc":"2.0","id":"42","method":"Application.GetProperties"}`)
}

func (*requestSuite) TestGeneratedIDsDiffer(c *gc.C) {
	first := rpc.NewRequest("JSONRPC.Ping")
	second := rpc.NewRequest("JSONRPC.Ping")
	c.Check(first.ID(), gc.Not(gc.Equals), "")
	c.Check(first.ID(), gc.Not(gc.Equals), second.ID())
}

func (*requestSuite) TestNilValuesLeaveParamsAbsent(c *gc.C) {
	req := rpc.NewRequestWithSource(fixedIDSource("1"), "Player.Open")
	req.AddString("file", nil)
	req.AddInt("playerid", nil)
	req.AddBool("shuffled", nil)
	req.AddFloat("percentage", nil)
	req.AddStrings("properties", nil)
	req.AddStrings("fields", []string{})
	req.AddStringMap("options", nil)
	req.AddStringMap("extra", map[string]string{})
	c.Assert(req.AddObject("item", nil), jc.ErrorIsNil)
	c.Assert(req.AddObjects("items"), jc.ErrorIsNil)

	c.Check(req.HasParams(), jc.IsFalse)
	data, err := json.Marshal(req)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(data), gc.Equals, `{"jsonrpc":"2.0","id":"1","method":"Player.Open"}`)
}

func (*requestSuite) TestExplicitZeroValuesAreSerialized(c *gc.C) {
	req := rpc.NewRequestWithSource(fixedIDSource("1"), "Player.SetSpeed")
	req.AddString("text", strPtr(""))
	req.AddInt("speed", intPtr(0))
	req.AddBool("play", boolPtr(false))
	req.AddFloat("position", floatPtr(0))

	c.Assert(req.HasParams(), jc.IsTrue)
	data, err := json.Marshal(req.Params())
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(data), gc.Equals, `{"text":"","speed":0,"play":false,"position":0}`)
}

func (*requestSuite) TestParamsBagIsIdempotent(c *gc.C) {
	req := rpc.NewRequestWithSource(fixedIDSource("1"), "VideoLibrary.GetMovies")
	bag := req.Params()
	c.Check(req.Params(), gc.Equals, bag)

	req.AddInt("limit", intPtr(10))
	req.AddString("sort", strPtr("title"))
	c.Check(req.Params(), gc.Equals, bag)
	c.Check(bag.Len(), gc.Equals, 2)
}

func (*requestSuite) TestParamsPreserveInsertionOrder(c *gc.C) {
	req := rpc.NewRequestWithSource(fixedIDSource("1"), "VideoLibrary.GetMovies")
	req.AddInt("b", intPtr(1))
	req.AddInt("a", intPtr(2))
	req.AddInt("b", intPtr(3))

	data, err := json.Marshal(req.Params())
	c.Assert(err, jc.ErrorIsNil)
	c.Check(string(data), gc.Equals, `{"b":3,"a":2}`)
}

func (*requestSuite) TestObjectParameter(c *gc.C) {
	req := rpc.NewRequestWithSource(fixedIDSource("1"), "Playlist.Add")
	err := req.AddObject("item", &fakeModel{Label: "movie"})
	c.Assert(err, jc.ErrorIsNil)

	raw, ok := req.Params().Get("item")
	c.Assert(ok, jc.IsTrue)
	c.Check(string(raw), gc.Equals, `{"label":"movie"}`)
}

func (*requestSuite) TestObjectsParameter(c *gc.C) {
	req := rpc.NewRequestWithSource(fixedIDSource("1"), "Playlist.Add")
	err := req.AddObjects("items", &fakeModel{Label: "a"}, &fakeModel{Label: "b"})
	c.Assert(err, jc.ErrorIsNil)

	raw, ok := req.Params().Get("items")
	c.Assert(ok, jc.IsTrue)
	c.Check(string(raw), gc.Equals, `[{"label":"a"},{"label":"b"}]`)
}

func (*requestSuite) TestStringsAndMapParameters(c *gc.C) {
	req := rpc.NewRequestWithSource(fixedIDSource("1"), "Application.GetProperties")
	req.AddStrings("properties", []string{"version", "name"})
	req.AddStringMap("options", map[string]string{"key": "value"})

	raw, ok := req.Params().Get("properties")
	c.Assert(ok, jc.IsTrue)
	c.Check(string(raw), gc.Equals, `["version","name"]`)

	raw, ok = req.Params().Get("options")
	c.Assert(ok, jc.IsTrue)
	c.Check(string(raw), gc.Equals, `{"key":"value"}`)
}

func (*requestSuite) TestRoundTrip(c *gc.C) {
	req := rpc.NewRequestWithSource(fixedIDSource("7"), "AudioLibrary.GetSongDetails")
	req.AddInt("songid", intPtr(12))
	req.AddStrings("properties", []string{"title"})

	data, err := json.Marshal(req)
	c.Assert(err, jc.ErrorIsNil)

	var decoded struct {
		JSONRPC string         `json:"jsonrpc"`
		ID      string         `json:"id"`
		Method  string         `json:"method"`
		Params  map[string]any `json:"params"`
	}
	err = json.Unmarshal(data, &decoded)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(decoded.JSONRPC, gc.Equals, rpc.Version)
	c.Check(decoded.ID, gc.Equals, "7")
	c.Check(decoded.Method, gc.Equals, "AudioLibrary.GetSongDetails")
	c.Check(decoded.Params, jc.DeepEquals, map[string]any{
		"songid":     float64(12),
		"properties": []any{"title"},
	})
}
