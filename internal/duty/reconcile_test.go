package duty

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azalim25/cfoescala-sub000/internal/model"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func testMembers() []model.ServiceMember {
	return []model.ServiceMember{
		{MemberID: "m1", Name: "Ana Souza", Rank: "Cad", Seniority: intPtr(1)},
		{MemberID: "m2", Name: "Bruno Lima", Rank: "Cad", Seniority: intPtr(2)},
		{MemberID: "m3", Name: "Carla Dias", Rank: "Cad"},
	}
}

func findEntries(tl Timeline, member, date string, typ Type) []Entry {
	var out []Entry
	for _, e := range tl.Entries {
		if e.MemberID == member && e.DateKey() == date && e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func anomalyKinds(tl Timeline) []string {
	kinds := make([]string, 0, len(tl.Anomalies))
	for _, a := range tl.Anomalies {
		kinds = append(kinds, a.Kind)
	}
	return kinds
}

func TestReconcile_ShiftAndStageSameDay(t *testing.T) {
	monday := day(t, "2024-06-03")
	snap := Snapshot{
		Members: testMembers(),
		Shifts: []model.ShiftAssignment{
			{ShiftID: "s1", MemberID: "m1", Date: monday, DutyType: "Estágio", Location: strPtr("QCG")},
			{ShiftID: "s2", MemberID: "m2", Date: monday, DutyType: "Estágio", Location: strPtr("COBOM")},
			{ShiftID: "s3", MemberID: "m3", Date: monday, DutyType: "Estágio"},
		},
		Stages: []model.StageAssignment{
			{StageID: "g1", MemberID: "m1", Date: monday, Location: "1°BBM"},
			{StageID: "g2", MemberID: "m2", Date: monday, Location: "2°BBM"},
			{StageID: "g3", MemberID: "m3", Date: monday, Location: "BOA"},
		},
	}

	tl := Reconcile(snap)
	require.Len(t, tl.Entries, 3)

	for member, wantLoc := range map[string]string{"m1": "1°BBM", "m2": "COBOM", "m3": "BOA"} {
		got := findEntries(tl, member, "2024-06-03", TypeInternship)
		require.Len(t, got, 1, member)
		assert.Equal(t, SourceShift, got[0].Source, member)
		assert.Equal(t, wantLoc, got[0].Location, member)
		assert.Equal(t, 12.0, got[0].Hours, member)
	}
	assert.Empty(t, tl.Anomalies)
}

func TestReconcile_StageOnly(t *testing.T) {
	saturday := day(t, "2024-06-01")
	monday := day(t, "2024-06-03")
	snap := Snapshot{
		Members: testMembers(),
		Stages: []model.StageAssignment{
			{StageID: "g1", MemberID: "m1", Date: saturday, Location: "COBOM"},
			{StageID: "g2", MemberID: "m1", Date: monday},
			{StageID: "g3", MemberID: "m1", Date: monday, Location: "BOA"},
		},
	}

	tl := Reconcile(snap)
	require.Len(t, tl.Entries, 2)

	sat := findEntries(tl, "m1", "2024-06-01", TypeInternship)
	require.Len(t, sat, 1)
	assert.Equal(t, 24.0, sat[0].Hours)
	assert.Equal(t, "08:00", sat[0].Start)
	assert.Equal(t, "08:00", sat[0].End)
	assert.Equal(t, SourceStage, sat[0].Source)

	mon := findEntries(tl, "m1", "2024-06-03", TypeInternship)
	require.Len(t, mon, 1)
	assert.Equal(t, Unspecified, mon[0].Location)
	assert.Equal(t, "g2", mon[0].SourceID)

	assert.Equal(t, []string{AnomalyDuplicateStage}, anomalyKinds(tl))
}

func TestReconcile_StageMarkerMeansNoTimes(t *testing.T) {
	saturday := day(t, "2024-06-01")
	monday := day(t, "2024-06-03")
	tuesday := day(t, "2024-06-04")
	six := 6.0
	snap := Snapshot{
		Members: testMembers(),
		Stages: []model.StageAssignment{
			{StageID: "g1", MemberID: "m1", Date: monday, StartTime: "08:00", EndTime: "08:00"},
			{StageID: "g2", MemberID: "m1", Date: saturday, StartTime: "08:00", EndTime: "08:00"},
			{StageID: "g3", MemberID: "m2", Date: tuesday, StartTime: "08:00", EndTime: "08:00", ExplicitDuration: &six},
			{StageID: "g4", MemberID: "m2", Date: monday, StartTime: "08:00", EndTime: "14:00"},
		},
	}

	tl := Reconcile(snap)
	require.Len(t, tl.Entries, 4)

	mon := findEntries(tl, "m1", "2024-06-03", TypeInternship)
	require.Len(t, mon, 1)
	assert.Equal(t, 12.0, mon[0].Hours)
	assert.Equal(t, "08:00", mon[0].Start)
	assert.Equal(t, "08:00", mon[0].End)

	sat := findEntries(tl, "m1", "2024-06-01", TypeInternship)
	require.Len(t, sat, 1)
	assert.Equal(t, 24.0, sat[0].Hours)

	explicit := findEntries(tl, "m2", "2024-06-04", TypeInternship)
	require.Len(t, explicit, 1)
	assert.Equal(t, 6.0, explicit[0].Hours)

	custom := findEntries(tl, "m2", "2024-06-03", TypeInternship)
	require.Len(t, custom, 1)
	assert.Equal(t, 6.0, custom[0].Hours)
	assert.Empty(t, tl.Anomalies)
}

func TestReconcile_DiverseLedgerDedup(t *testing.T) {
	tuesday := day(t, "2024-06-04")
	wednesday := day(t, "2024-06-05")
	snap := Snapshot{
		Members: testMembers(),
		Shifts: []model.ShiftAssignment{
			{ShiftID: "s1", MemberID: "m1", Date: tuesday, DutyType: "Serviço Diverso", StartTime: "08:00", EndTime: "11:00"},
		},
		Extras: []model.ExtraHourEntry{
			{EntryID: "e1", MemberID: "m1", Date: tuesday, Category: "CFO I - Registro de Horas", Hours: 3, Description: "Serviço Diverso - Formatura"},
			{EntryID: "e2", MemberID: "m1", Date: wednesday, Category: "CFO I - Registro de Horas", Hours: 2, Minutes: 30, Description: "Serviço Diverso - Formatura no QCG"},
			{EntryID: "e3", MemberID: "m2", Date: wednesday, Category: "CFO I - Registro de Horas", Hours: 1},
		},
	}

	tl := Reconcile(snap)

	tue := findEntries(tl, "m1", "2024-06-04", TypeDiverse)
	require.Len(t, tue, 1)
	assert.Equal(t, SourceShift, tue[0].Source)
	assert.Equal(t, 3.0, tue[0].Hours)

	wed := findEntries(tl, "m1", "2024-06-05", TypeDiverse)
	require.Len(t, wed, 1)
	assert.Equal(t, SourceExtra, wed[0].Source)
	assert.Equal(t, 2.5, wed[0].Hours)
	assert.Equal(t, "Formatura no QCG", wed[0].Location)
	assert.Equal(t, "08:00", wed[0].Start)
	assert.Equal(t, "12:00", wed[0].End)

	m2 := findEntries(tl, "m2", "2024-06-05", TypeDiverse)
	require.Len(t, m2, 1)
	assert.Equal(t, Unspecified, m2[0].Location)
}

func TestReconcile_ManualCountersExcluded(t *testing.T) {
	monday := day(t, "2024-06-03")
	snap := Snapshot{
		Members: testMembers(),
		Extras: []model.ExtraHourEntry{
			{EntryID: "e1", MemberID: "m1", Date: monday, Category: "CFO I - Sobreaviso", Hours: 3},
			{EntryID: "e2", MemberID: "m1", Date: monday, Category: "CFO I - Faxina"},
			{EntryID: "e3", MemberID: "m1", Date: monday, Category: "CFO I - Estágio - 1°BBM - 24h", Hours: 48},
			{EntryID: "e4", MemberID: "m1", Date: monday, Category: "CFO I - Estágio - COBOM - 12h"},
			{EntryID: "e5", MemberID: "m1", Date: monday, Category: "CFO I - Comandante da Guarda", Hours: 10, Minutes: 30},
			{EntryID: "e6", MemberID: "m1", Date: monday, Category: "Categoria solta"},
		},
	}

	tl := Reconcile(snap)
	assert.Empty(t, tl.Entries)
	require.Len(t, tl.Manual, 5)

	byID := make(map[string]ManualCounter)
	for _, mc := range tl.Manual {
		byID[mc.EntryID] = mc
	}
	assert.Equal(t, 3, byID["e1"].Units)
	assert.Equal(t, 1, byID["e2"].Units)
	assert.Equal(t, 48.0, byID["e3"].Hours)
	assert.Equal(t, 2, byID["e3"].Units)
	assert.Equal(t, 12.0, byID["e4"].Hours)
	assert.Equal(t, 1, byID["e4"].Units)
	assert.Equal(t, 10.5, byID["e5"].Hours)
	assert.Equal(t, TypeGuardCommander, byID["e5"].Category.DutyType)

	assert.Equal(t, []string{AnomalyUnknownCategory}, anomalyKinds(tl))
}

func TestReconcile_UnknownTallyLabel(t *testing.T) {
	monday := day(t, "2024-06-03")
	snap := Snapshot{
		Members: testMembers(),
		Extras: []model.ExtraHourEntry{
			{EntryID: "e1", MemberID: "m1", Date: monday, Category: "CFO I - Palestra", Hours: 2},
			{EntryID: "e2", MemberID: "m1", Date: monday, Category: "CFO I - Sobreaviso", Hours: 1},
		},
	}

	tl := Reconcile(snap)
	require.Len(t, tl.Manual, 1)
	assert.Equal(t, "e2", tl.Manual[0].EntryID)
	require.Len(t, tl.Anomalies, 1)
	assert.Equal(t, AnomalyUnknownCategory, tl.Anomalies[0].Kind)
	assert.Equal(t, "e1", tl.Anomalies[0].RecordID)
}

func TestReconcile_AnomaliesAreNotFatal(t *testing.T) {
	monday := day(t, "2024-06-03")
	snap := Snapshot{
		Members: testMembers(),
		Shifts: []model.ShiftAssignment{
			{ShiftID: "s1", MemberID: "ghost", Date: monday, DutyType: "Comandante da Guarda"},
			{ShiftID: "s2", MemberID: "m1", DutyType: "Comandante da Guarda"},
			{ShiftID: "s3", MemberID: "m1", Date: monday, DutyType: "Estágio"},
			{ShiftID: "s4", MemberID: "m1", Date: monday, DutyType: "Estagio"},
			{ShiftID: "s5", MemberID: "m2", Date: monday, DutyType: "Serviço Diverso", StartTime: "xx", EndTime: "12:00"},
		},
	}

	tl := Reconcile(snap)
	require.Len(t, tl.Entries, 3)

	ghost := findEntries(tl, "ghost", "2024-06-03", TypeGuardCommander)
	require.Len(t, ghost, 1)
	assert.False(t, ghost[0].Known)
	assert.Equal(t, 11.0, ghost[0].Hours)

	diverse := findEntries(tl, "m2", "2024-06-03", TypeDiverse)
	require.Len(t, diverse, 1)
	assert.Equal(t, 0.0, diverse[0].Hours)

	assert.ElementsMatch(t, []string{
		AnomalyOrphanMember,
		AnomalyInvalidDate,
		AnomalyDuplicateShift,
		AnomalyUnparsableInterval,
	}, anomalyKinds(tl))
}

func TestReconcile_HolidayGuardCommander(t *testing.T) {
	tuesday := day(t, "2024-06-04")
	snap := Snapshot{
		Members:  testMembers(),
		Holidays: []model.Holiday{{HolidayID: "h1", Date: tuesday, Description: "Feriado municipal"}},
		Shifts: []model.ShiftAssignment{
			{ShiftID: "s1", MemberID: "m1", Date: tuesday, DutyType: "Comandante da Guarda"},
		},
	}

	tl := Reconcile(snap)
	require.Len(t, tl.Entries, 1)
	e := tl.Entries[0]
	assert.Equal(t, 24.0, e.Hours)
	assert.True(t, e.Holiday)
	assert.Equal(t, "06:30", e.Start)
	assert.Equal(t, "06:30", e.End)
	assert.True(t, tl.Holidays["2024-06-04"])
}

func TestReconcile_SortOrder(t *testing.T) {
	monday := day(t, "2024-06-03")
	tuesday := day(t, "2024-06-04")
	snap := Snapshot{
		Members: testMembers(),
		Shifts: []model.ShiftAssignment{
			{ShiftID: "s1", MemberID: "m3", Date: monday, DutyType: "Faxina"},
			{ShiftID: "s2", MemberID: "m3", Date: monday, DutyType: "Comandante da Guarda"},
			{ShiftID: "s3", MemberID: "m2", Date: monday, DutyType: "Estágio"},
			{ShiftID: "s4", MemberID: "m1", Date: tuesday, DutyType: "Estágio"},
			{ShiftID: "s5", MemberID: "m1", Date: monday, DutyType: "Estágio"},
			{ShiftID: "s6", MemberID: "m2", Date: monday, DutyType: "Plantão"},
		},
	}

	tl := Reconcile(snap)
	var got []string
	for _, e := range tl.Entries {
		got = append(got, e.SourceID)
	}
	assert.Equal(t, []string{"s2", "s5", "s4", "s3", "s1", "s6"}, got)
}

func TestReconcile_Idempotent(t *testing.T) {
	saturday := day(t, "2024-06-01")
	monday := day(t, "2024-06-03")
	snap := Snapshot{
		Members:  testMembers(),
		Holidays: []model.Holiday{{HolidayID: "h1", Date: monday}},
		Shifts: []model.ShiftAssignment{
			{ShiftID: "s1", MemberID: "m1", Date: saturday, DutyType: "Estágio"},
			{ShiftID: "s2", MemberID: "m2", Date: monday, DutyType: "Comandante da Guarda"},
			{ShiftID: "s3", MemberID: "ghost", Date: monday, DutyType: "Sobreaviso"},
		},
		Stages: []model.StageAssignment{
			{StageID: "g1", MemberID: "m1", Date: saturday, Location: "COBOM"},
			{StageID: "g2", MemberID: "m3", Date: monday, Location: "BOA"},
		},
		Extras: []model.ExtraHourEntry{
			{EntryID: "e1", MemberID: "m2", Date: saturday, Category: "CFO I - Registro de Horas", Hours: 4},
			{EntryID: "e2", MemberID: "m3", Date: saturday, Category: "CFO I - Bar", Hours: 2},
		},
	}

	first := Reconcile(snap)
	second := Reconcile(snap)
	if diff := cmp.Diff(first, second, cmp.AllowUnexported(Entry{})); diff != "" {
		t.Fatalf("reconciliação não é determinística (-primeira +segunda):\n%s", diff)
	}
}

func TestReconcile_SaturdayInternshipRanking(t *testing.T) {
	saturday := day(t, "2024-06-01")
	members := testMembers()
	tl := Reconcile(Snapshot{
		Members: members,
		Shifts: []model.ShiftAssignment{
			{ShiftID: "s1", MemberID: "m1", Date: saturday, DutyType: "Estágio"},
		},
	})

	require.Len(t, tl.Entries, 1)
	assert.Equal(t, 24.0, tl.Entries[0].Hours)

	rows := Ranking(tl, members, RankingFilter{Types: []Type{TypeInternship}})
	require.Len(t, rows, 3)
	assert.Equal(t, "m1", rows[0].MemberID)
	assert.Equal(t, 24.0, Round1(rows[0].TotalHours))
}
