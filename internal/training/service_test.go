package training

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/viniciusmf/gym-management-backend/internal/member"
)

func setupService(t *testing.T) (*Service, *member.Member) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&member.Plan{}, &member.Member{}, &Sheet{}))

	m := &member.Member{FullName: "Ana Souza", CPF: "12345678901", EntryDate: time.Now().UTC()}
	require.NoError(t, db.Create(m).Error)

	return NewService(NewRepository(db), member.NewRepository(db), nil), m
}

func sheetInput(memberID string) SheetInput {
	return SheetInput{
		MemberID: memberID,
		Exercises: map[string][]ExerciseEntry{
			"lower": {
				{Day: "22", Number: "01", Exercise: "Hip Abduction", Series: "3x12", Load: "guided"},
				{Day: "06", Number: "03", Exercise: "Lunge", Series: "4x10", Load: "free"},
			},
			"upper": {
				{Day: "19", Number: "03", Exercise: "Reverse Fly", Series: "3x15", Load: "guided"},
			},
		},
	}
}

func TestCreateSheetStoresExerciseGroups(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	sheet, err := svc.CreateSheet(ctx, sheetInput(m.ID), nil, "")
	require.NoError(t, err)
	require.NotEmpty(t, sheet.ID)

	got, err := svc.GetSheet(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.MemberID)

	var groups map[string][]ExerciseEntry
	require.NoError(t, json.Unmarshal(got.Exercises, &groups))
	require.Len(t, groups["lower"], 2)
	assert.Equal(t, "Lunge", groups["lower"][1].Exercise)
	assert.Equal(t, "3x15", groups["upper"][0].Series)
}

func TestCreateSheetRequiresExistingMember(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.CreateSheet(context.Background(), sheetInput("no-such-member"), nil, "")

	assert.EqualError(t, err, "member not found")
}

func TestCreateSheetRejectsEmptyContent(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input SheetInput
	}{
		{"no member selected", sheetInput("")},
		{"no groups", SheetInput{MemberID: m.ID}},
		{"group without exercises", SheetInput{
			MemberID:  m.ID,
			Exercises: map[string][]ExerciseEntry{"lower": {}},
		}},
		{"exercise without a name", SheetInput{
			MemberID:  m.ID,
			Exercises: map[string][]ExerciseEntry{"lower": {{Series: "3x12"}}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSheet(ctx, tc.input, nil, "")
			assert.Error(t, err)
		})
	}
}

func TestListSheetsNewestFirst(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	first, err := svc.CreateSheet(ctx, sheetInput(m.ID), nil, "")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := svc.CreateSheet(ctx, sheetInput(m.ID), nil, "")
	require.NoError(t, err)

	sheets, err := svc.ListByMember(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	assert.Equal(t, second.ID, sheets[0].ID)
	assert.Equal(t, first.ID, sheets[1].ID)
}

func TestDeleteSheet(t *testing.T) {
	svc, m := setupService(t)
	ctx := context.Background()

	sheet, err := svc.CreateSheet(ctx, sheetInput(m.ID), nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSheet(ctx, sheet.ID, nil, ""))

	sheets, err := svc.ListByMember(ctx, m.ID)
	require.NoError(t, err)
	assert.Empty(t, sheets)

	err = svc.DeleteSheet(ctx, sheet.ID, nil, "")
	assert.EqualError(t, err, "training sheet not found")
}
