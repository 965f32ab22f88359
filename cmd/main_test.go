package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/vaep/internal/adapters/matchio"
	"github.com/okian/vaep/internal/domain/model"
	"github.com/okian/vaep/internal/domain/spadl"
	"github.com/smartystreets/goconvey/convey"
)

func writeTestMatch(t *testing.T, path, gameID string) {
	t.Helper()
	log, err := model.NewActionLog(gameID, []model.Action{
		{Index: 1, GameID: gameID, PeriodID: 1, TimeSeconds: 10,
			TeamID: "home", PlayerID: "p1", StartX: 40, StartY: 30, EndX: 55, EndY: 34,
			Type: spadl.Pass, Result: spadl.Success, BodyPart: spadl.Foot},
		{Index: 2, GameID: gameID, PeriodID: 1, TimeSeconds: 12,
			TeamID: "home", PlayerID: "p2", StartX: 55, StartY: 34, EndX: 55, EndY: 34,
			Type: spadl.Reception, Result: spadl.Success, BodyPart: spadl.Foot},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := matchio.WriteMatch(path, log); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMatches(t *testing.T) {
	convey.Convey("Given match files and directories on disk", t, func() {
		dir := t.TempDir()
		writeTestMatch(t, filepath.Join(dir, "a.json"), "game-a")
		writeTestMatch(t, filepath.Join(dir, "b.json"), "game-b")

		single := filepath.Join(t.TempDir(), "c.json")
		writeTestMatch(t, single, "game-c")

		convey.Convey("When arguments mix a directory and a file", func() {
			logs, err := loadMatches([]string{dir, single})

			convey.Convey("Then every match loads, directory entries first", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(logs, convey.ShouldHaveLength, 3)
				convey.So(logs[0].GameID(), convey.ShouldEqual, "game-a")
				convey.So(logs[1].GameID(), convey.ShouldEqual, "game-b")
				convey.So(logs[2].GameID(), convey.ShouldEqual, "game-c")
			})
		})

		convey.Convey("When an argument does not exist", func() {
			_, err := loadMatches([]string{filepath.Join(dir, "missing.json")})

			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When a directory holds a corrupt match file", func() {
			bad := t.TempDir()
			convey.So(os.WriteFile(filepath.Join(bad, "broken.json"), []byte("{"), 0o600), convey.ShouldBeNil)

			_, err := loadMatches([]string{bad})

			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestWriteResults(t *testing.T) {
	convey.Convey("Given the result writer", t, func() {
		convey.Convey("When an output path is configured and nothing was submitted", func() {
			path := filepath.Join(t.TempDir(), "records.ndjson")

			err := writeResults(context.Background(), nil, path, nil)

			convey.Convey("Then an empty output file is still created", func() {
				convey.So(err, convey.ShouldBeNil)
				raw, readErr := os.ReadFile(path)
				convey.So(readErr, convey.ShouldBeNil)
				convey.So(raw, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the output path cannot be created", func() {
			err := writeResults(context.Background(), nil, filepath.Join(t.TempDir(), "no", "such", "dir.ndjson"), nil)

			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
