package audit

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/omniscale/osmcsv/mapping"
	"github.com/omniscale/osmcsv/parser/osmxml"
)

func TestKeyCounter(t *testing.T) {
	kc := NewKeyCounter(2)
	for _, k := range []string{"highway", "name", "building", "name", "addr:street", "FIXME", "fixme one"} {
		kc.Add(k)
	}
	if kc.Count(mapping.Plain) != 4 || kc.Count(mapping.Namespaced) != 1 ||
		kc.Count(mapping.Other) != 1 || kc.Count(mapping.Problem) != 1 {
		t.Error(kc.counts)
	}
	if ex := kc.Examples(mapping.Plain); !reflect.DeepEqual(ex, []string{"highway", "name"}) {
		t.Error("examples not bounded", ex)
	}
	if ex := kc.Examples(mapping.Problem); !reflect.DeepEqual(ex, []string{"fixme one"}) {
		t.Error(ex)
	}
}

func TestStreetTypes(t *testing.T) {
	st := NewStreetTypes(mapping.DefaultRules())
	for _, name := range []string{"Main Street", "Huntington Ave", "Massachusetts Ave", "Boylston St.", "Broadway", "Elm St "} {
		st.Add(name)
	}
	if types := st.Types(); !reflect.DeepEqual(types, []string{"Ave", "Broadway", "St."}) {
		t.Fatal(types)
	}
	if names := st.Names("Ave"); !reflect.DeepEqual(names, []string{"Huntington Ave", "Massachusetts Ave"}) {
		t.Error(names)
	}
}

func TestValueCounter(t *testing.T) {
	vc := NewValueCounter("tourism")
	for _, v := range []string{"hotel", "museum", "hotel", "artwork", "museum", "hotel"} {
		vc.Add(v)
	}
	expected := []ValueCount{{"hotel", 3}, {"museum", 2}, {"artwork", 1}}
	if counts := vc.Counts(); !reflect.DeepEqual(counts, expected) {
		t.Error(counts)
	}
	if vc.Unique() != 3 {
		t.Error(vc.Unique())
	}
}

const doc = `<osm>
 <node id="1" lat="1" lon="1">
  <tag k="tourism" v="hotel"/>
  <tag k="addr:street" v="Huntington Ave"/>
  <tag k="addr:postcode" v="02115"/>
 </node>
 <way id="2">
  <nd ref="1"/>
  <tag k="name:zh-Hant" v="波士頓"/>
  <tag k="fixme one" v="x"/>
 </way>
 <relation id="3"><tag k="tourism" v="museum"/></relation>
</osm>`

func TestAuditorRun(t *testing.T) {
	a := New(mapping.DefaultRules(), 10, []string{"addr:postcode", "tourism"})
	if err := a.Run(osmxml.New(strings.NewReader(doc), osmxml.Config{})); err != nil {
		t.Fatal(err)
	}
	if a.Elements != 3 {
		t.Error(a.Elements)
	}
	if a.Keys.Count(mapping.Plain) != 2 || a.Keys.Count(mapping.Namespaced) != 2 ||
		a.Keys.Count(mapping.Other) != 1 || a.Keys.Count(mapping.Problem) != 1 {
		t.Error(a.Keys.counts)
	}
	if types := a.Streets.Types(); !reflect.DeepEqual(types, []string{"Ave"}) {
		t.Error(types)
	}
	if a.Values[1].Unique() != 2 {
		t.Error(a.Values[1].Counts())
	}

	buf := &bytes.Buffer{}
	if err := a.Report(buf); err != nil {
		t.Fatal(err)
	}
	report := buf.String()
	for _, s := range []string{
		"Tag keys of 3 elements",
		"problem     1      fixme one",
		"1 street types that might need revision",
		"Ave          Huntington Ave",
		"2 unique values of tourism",
	} {
		if !strings.Contains(report, s) {
			t.Errorf("%q not found in report:\n%s", s, report)
		}
	}

	err := New(mapping.DefaultRules(), 1, nil).Run(osmxml.New(strings.NewReader("<osm><node>"), osmxml.Config{}))
	if err == nil {
		t.Error("parse error not returned")
	}
}

func TestWriteTable(t *testing.T) {
	b := &strings.Builder{}
	writeTable(b, [][]string{{"value", "count"}, {"波士頓", "1"}, {"a", "10"}})
	expected := "value   count\n" +
		"------  -----\n" +
		"波士頓  1\n" +
		"a       10\n"
	if b.String() != expected {
		t.Errorf("\n%s\n%s", b.String(), expected)
	}
}
