package element

import (
	"reflect"
	"testing"
)

func TestChildrenNamed(t *testing.T) {
	way := &Element{
		Name:  "way",
		Attrs: map[string]string{"id": "1"},
		Children: []*Element{
			{Name: "nd", Attrs: map[string]string{"ref": "10"}},
			{Name: "tag", Attrs: map[string]string{"k": "highway", "v": "residential"}},
			{Name: "nd", Attrs: map[string]string{"ref": "11"}},
		},
	}

	nds := way.ChildrenNamed("nd")
	if len(nds) != 2 || nds[0].Attrs["ref"] != "10" || nds[1].Attrs["ref"] != "11" {
		t.Fatal(nds)
	}
	if tags := way.ChildrenNamed("member"); tags != nil {
		t.Fatal(tags)
	}
	if v, ok := way.Attr("id"); !ok || v != "1" {
		t.Fatal(v, ok)
	}
	if _, ok := way.Attr("lat"); ok {
		t.Fatal("lat found on way")
	}
}

func TestRows(t *testing.T) {
	node := NodeRecord{"1", "42.3", "-71.1", "bob", "7", "2", "99", "2016-01-01T00:00:00Z"}
	if row := node.Row(); len(row) != len(NodeColumns) || row[1] != "42.3" || row[7] != "2016-01-01T00:00:00Z" {
		t.Error(row)
	}
	way := WayRecord{"5", "bob", "7", "2", "99", "2016-01-01T00:00:00Z"}
	if row := way.Row(); len(row) != len(WayColumns) || row[0] != "5" {
		t.Error(row)
	}
	tag := TagRecord{ID: "5", Key: "street", Value: "Main Street", Type: "addr"}
	if row := tag.Row(); !reflect.DeepEqual(row, []string{"5", "street", "Main Street", "addr"}) {
		t.Error(row)
	}
	wn := WayNodeRecord{ID: "5", NodeID: "1", Position: 12}
	if row := wn.Row(); !reflect.DeepEqual(row, []string{"5", "1", "12"}) {
		t.Error(row)
	}
}

func TestKind(t *testing.T) {
	for name, kind := range KindValues {
		if kind.String() != name {
			t.Errorf("%s != %s", kind, name)
		}
	}
}
