package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	out := make(map[string]string, len(ve.Errors))
	for _, fe := range ve.Errors {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestOptional_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	var patch StepPatch
	if err := json.Unmarshal([]byte(`{"descricao":null,"centros":"MP20","ativa":false}`), &patch); err != nil {
		t.Fatal(err)
	}

	if patch.Name.Set {
		t.Error("omitted key must stay unset")
	}
	if !patch.Description.Set || !patch.Description.Null {
		t.Errorf("explicit null: %+v", patch.Description)
	}
	if !patch.Centers.Present() || patch.Centers.Value != "MP20" {
		t.Errorf("centros: %+v", patch.Centers)
	}
	if !patch.Active.Present() || patch.Active.Value {
		t.Errorf("explicit false must be present: %+v", patch.Active)
	}
}

func TestOptional_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Optional[int]
		want string
	}{
		{"unset", Optional[int]{}, "null"},
		{"null", Null[int](), "null"},
		{"value", Some(3), "3"},
		{"zero value", Some(0), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCreateStepInput_Validate(t *testing.T) {
	t.Parallel()

	got := fieldsOf(t, CreateStepInput{Name: "  ", Centers: "MP10", RequiredParams: []string{}}.Validate())
	want := map[string]string{"nome": "required", "centros_trabalho": "required"}
	if len(got) != len(want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}

	ok := CreateStepInput{Name: "CORTE LASER", Centers: "MP10", WorkCenters: []string{"MA303"}, RequiredParams: []string{}}
	if err := ok.Validate(); err != nil {
		t.Errorf("empty required-params list should be accepted: %v", err)
	}
}

func TestPatchValidate_RejectsNullOnRequiredColumns(t *testing.T) {
	t.Parallel()

	got := fieldsOf(t, StepPatch{
		Name:        Some(""),
		WorkCenters: Null[[]string](),
		Active:      Null[bool](),
		Description: Null[string](),
	}.Validate())

	for _, field := range []string{"nome", "centros_trabalho", "ativa"} {
		if _, ok := got[field]; !ok {
			t.Errorf("expected error on %s, got %v", field, got)
		}
	}
	if _, ok := got["descricao"]; ok {
		t.Error("descricao is nullable")
	}
}

func TestProjectValidate_Plan(t *testing.T) {
	t.Parallel()

	valid := CreateProjectInput{
		Name:  "Projeto Piloto",
		Owner: "João Silva",
		Plan:  map[string]any{"rotas": []any{map[string]any{"rota_id": 1}}},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid project rejected: %v", err)
	}

	invalid := valid
	invalid.Plan = map[string]any{"rotas": "1,2"}
	if got := fieldsOf(t, invalid.Validate()); got["roteiro"] == "" {
		t.Errorf("expected roteiro error, got %v", got)
	}

	patch := ProjectPatch{Plan: Some(map[string]any{"configuracoes_globais": map[string]any{}})}
	if got := fieldsOf(t, patch.Validate()); got["roteiro"] == "" {
		t.Errorf("patch without rotas should fail, got %v", got)
	}
}

func TestNewPage(t *testing.T) {
	t.Parallel()

	p := NewPage[int](nil, 2, 50, 101)
	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages)
	}
	if p.Items == nil {
		t.Error("items must encode as [] not null")
	}

	if got := NewPage([]int{1}, 1, 0, 1).TotalPages; got != 0 {
		t.Errorf("zero limit TotalPages = %d, want 0", got)
	}
}
