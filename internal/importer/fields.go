package importer

import "github.com/coppahp/planner/internal/domain"

// Field is a canonical attribute name, independent of spreadsheet headers.
type Field string

const (
	FieldName        Field = "name"
	FieldPhaseNo     Field = "phase_no"
	FieldObjectiveNo Field = "objective_no"
	FieldPhase       Field = "phase"
	FieldObjective   Field = "objective"
	FieldDPNo        Field = "dp_no"
	FieldDPName      Field = "dp_name"
	FieldTaskNo      Field = "task_no"
	FieldTaskName    Field = "task_name"
	FieldWeight      Field = "weight"
	FieldDPWeight    Field = "dp_weight"
	FieldProgress    Field = "progress"
	FieldType        Field = "type"
	FieldIntangible  Field = "intangible"
	FieldCriteria    Field = "criteria"
	FieldForceGroup  Field = "force_group"
)

// SynonymGroup lists the header spellings accepted for one field. Matching
// is case-insensitive with internal whitespace collapsed, so only distinct
// spellings need listing.
type SynonymGroup struct {
	Field    Field
	Synonyms []string
}

// Table is an ordered list of synonym groups. When a header matches several
// groups the earliest group claims it.
type Table []SynonymGroup

var phaseTable = Table{
	{FieldName, []string{"Name", "Phase", "Phase Name"}},
	{FieldPhaseNo, []string{"Phase No", "Phase Number", "PhaseNo", "Phase_No"}},
}

var objectiveTable = Table{
	{FieldName, []string{"Name", "Objective", "Objective Name"}},
	{FieldPhase, []string{"Phase", "Phase Name"}},
	{FieldObjectiveNo, []string{"Objective No", "Objective Number", "ObjectiveNo", "Objective_No"}},
}

var dpTable = Table{
	{FieldName, []string{"Name", "DP", "Decisive Point", "Description of DP", "DP Description", "DP Name"}},
	{FieldDPNo, []string{"DP No", "DP Number", "DPNo", "DP_No"}},
	{FieldObjective, []string{"Objective", "Objective Name"}},
	{FieldPhase, []string{"Phase", "Phase Name"}},
	{FieldWeight, []string{"Weight", "Wt", "Weightage", "Weightage Factor (1-5) (W)", "Weightage Factor (1–5)", "Weightage Factor"}},
	{FieldForceGroup, []string{"Force Group", "Force Group Assigned", "Force Group Asigned", "Force", "Assigned Force"}},
}

var taskTable = Table{
	{FieldName, []string{"Name", "Task", "Task Name", "Desc", "Description", "Task Description"}},
	{FieldDPNo, []string{"DP", "DP No", "Decisive Point", "DP_No", "DPNo"}},
	{FieldWeight, []string{"Weight", "Wt", "Weightage", "Weight %", "Weights", "Weightage %", "Weightage Factor (1-5) (W)", "Weightage Factor (1–5)", "Weightage Factor"}},
	{FieldProgress, []string{"Progress", "Achieved %", "Achieved", "Progress %", "Complete %", "Completion", "Status"}},
	{FieldTaskNo, []string{"Task No", "Task Number", "TaskNo", "Task_No"}},
	{FieldType, []string{"Type", "T/I", "Tangible / Intangible (T/IN)", "Task Tangible / Intangible (T/IN)", "Type (Tangible/Intangible)", "Tangible/Intangible", "T/IN"}},
	{FieldIntangible, []string{"Intangible", "Intangible Assessment"}},
	{FieldCriteria, []string{"Criteria", "Criteria of Success", "Success Criteria", "Criterion"}},
	{FieldForceGroup, []string{"Force Group", "Force TG Assigned", "Task TG Assigned", "Force", "Assigned Force"}},
}

// combinedTable reads the single denormalized sheet.
var combinedTable = Table{
	{FieldPhase, []string{"Phase"}},
	{FieldObjective, []string{"Objective"}},
	{FieldDPNo, []string{"DP No"}},
	{FieldDPName, []string{"Description of DP", "DP Description"}},
	{FieldForceGroup, []string{"Force Group Asigned", "Force Group Assigned", "Force Group"}},
	{FieldTaskNo, []string{"Task No"}},
	{FieldTaskName, []string{"Task Description"}},
	{FieldType, []string{"Task Tangible / Intangible (T/IN)", "Type (Tangible/Intangible)", "Type"}},
	{FieldWeight, []string{"Weightage Factor (1-5) (W)", "Weightage Factor (1–5)", "Weightage Factor"}},
	{FieldCriteria, []string{"Criteria of Success"}},
	// A bare "Weight" column weights DPs only.
	{FieldDPWeight, []string{"Weight"}},
}

// combinedSignals are the headers whose presence marks a sheet as the
// combined layout.
var combinedSignals = Table{
	{FieldDPName, []string{"Description of DP", "DP Description"}},
	{FieldTaskName, []string{"Task Description"}},
	{FieldWeight, []string{"Weightage Factor (1-5) (W)", "Weightage Factor (1–5)"}},
}

var kindTables = map[domain.EntityKind]Table{
	domain.KindPhase:     phaseTable,
	domain.KindObjective: objectiveTable,
	domain.KindDP:        dpTable,
	domain.KindTask:      taskTable,
}

// TableFor returns the synonym table for an entity kind.
func TableFor(kind domain.EntityKind) Table {
	return kindTables[kind]
}

// sheetNames are the accepted sheet names per kind in multi-sheet workbooks.
var sheetNames = map[domain.EntityKind][]string{
	domain.KindPhase:     {"Phases", "Phase"},
	domain.KindObjective: {"Objectives", "Objective"},
	domain.KindDP:        {"DPs", "DP"},
	domain.KindTask:      {"Tasks", "Task"},
}
