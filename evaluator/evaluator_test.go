package evaluator

import (
	"testing"

	"github.com/midbel/monkey/lexer"
	"github.com/midbel/monkey/object"
	"github.com/midbel/monkey/parser"
)

func testEval(t *testing.T, input string) object.Object {
	t.Helper()
	p := parser.New(lexer.New(input))
	program := p.Parse()
	if len(program.Errors) > 0 {
		t.Fatalf("input %q produced parse errors: %v", input, program.Errors)
	}
	return Eval(program, NewEnvironment())
}

func TestEvalIntegerExpression(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"5", 5},
		{"10", 10},
		{"-5", -5},
		{"-10", -10},
		{"5 + 5 + 5 + 5 - 10", 10},
		{"2 * 2 * 2 * 2 * 2", 32},
		{"-50 + 100 + -50", 0},
		{"5 * 2 + 10", 20},
		{"5 + 2 * 10", 25},
		{"20 + 2 * -10", 0},
		{"50 / 2 * 2 + 10", 60},
		{"2 * (5 + 10)", 30},
		{"3 * 3 * 3 + 10", 37},
		{"(5 + 10 * 2 + 15 / 3) * 2 + -10", 50},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 - 3 - 2", 5},
	}
	for _, tt := range tests {
		got := testEval(t, tt.input)
		testIntegerObject(t, got, tt.want)
	}
}

func TestEvalBooleanExpression(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"false", false},
		{"1 < 2", true},
		{"1 > 2", false},
		{"1 == 1", true},
		{"1 != 1", false},
		{"true == true", true},
		{"true != false", true},
		{"(1 < 2) == true", true},
		{"(1 < 2) == false", false},
	}
	for _, tt := range tests {
		got := testEval(t, tt.input)
		testBooleanObject(t, got, tt.want)
	}
}

func TestBangOperator(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"!true", false},
		{"!false", true},
		{"!5", false},
		{"!!true", true},
		{"!!false", false},
		{"!!5", true},
		{"!0", true},
	}
	for _, tt := range tests {
		got := testEval(t, tt.input)
		testBooleanObject(t, got, tt.want)
	}
}

func TestIfElseExpressionEval(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"if (true) { 10 }", int64(10)},
		{"if (false) { 10 }", nil},
		{"if (1) { 10 }", int64(10)},
		{"if (1 < 2) { 10 }", int64(10)},
		{"if (1 > 2) { 10 }", nil},
		{"if (1 > 2) { 10 } else { 20 }", int64(20)},
		{"if (1 < 2) { 10 } else { 20 }", int64(10)},
	}
	for _, tt := range tests {
		got := testEval(t, tt.input)
		if tt.want == nil {
			if got != object.Null {
				t.Errorf("input %q: got %s, want Null", tt.input, got.Inspect())
			}
			continue
		}
		testIntegerObject(t, got, tt.want.(int64))
	}
}

func TestReturnStatementUnwindsThroughNestedBlocks(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"return 10;", 10},
		{"return 2 * 5; 9;", 10},
		{"9; return 2 * 5; 9;", 10},
		{"if (10 > 1) { if (10 > 1) { return 10; } return 1; }", 10},
	}
	for _, tt := range tests {
		got := testEval(t, tt.input)
		testIntegerObject(t, got, tt.want)
	}
}

func TestErrorHandling(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5 + true;", "type mismatch: INTEGER + BOOLEAN"},
		{"5 + true; 5;", "type mismatch: INTEGER + BOOLEAN"},
		{"-true", "unknown operator: -BOOLEAN"},
		{"true + false;", "unknown operator: BOOLEAN + BOOLEAN"},
		{"5; true + false; 5", "unknown operator: BOOLEAN + BOOLEAN"},
		{"if (10 > 1) { true + false; }", "unknown operator: BOOLEAN + BOOLEAN"},
		{"foobar", "identifier not found: foobar"},
		{`"hi" - "there"`, "unknown operator: STRING - STRING"},
		{"10 / 0", "division by zero"},
	}
	for _, tt := range tests {
		got := testEval(t, tt.input)
		err, ok := got.(*object.Error)
		if !ok {
			t.Fatalf("input %q: expected *object.Error, got %T (%+v)", tt.input, got, got)
		}
		if err.Message != tt.want {
			t.Errorf("input %q: error message = %q, want %q", tt.input, err.Message, tt.want)
		}
	}
}

func TestClosuresCaptureByReference(t *testing.T) {
	input := `
let newAdder = fn(x) {
  fn(y) { x + y; };
};
let addTwo = newAdder(2);
addTwo(3);
`
	got := testEval(t, input)
	testIntegerObject(t, got, 5)
}

func TestCounterRecursion(t *testing.T) {
	input := `
let counter = fn(x) {
  if (x > 5) {
    return x;
  } else {
    counter(x + 1);
  }
};
counter(0);
`
	got := testEval(t, input)
	testIntegerObject(t, got, 6)
}

func TestFactorialRecursion(t *testing.T) {
	input := `
let factorial = fn(n) {
  if (n == 0) {
    return 1;
  }
  return n * factorial(n - 1);
};
factorial(5);
`
	got := testEval(t, input)
	testIntegerObject(t, got, 120)
}

func TestStringConcatenation(t *testing.T) {
	got := testEval(t, `"Hello" + " " + "World!"`)
	s, ok := got.(*object.String)
	if !ok {
		t.Fatalf("expected *object.String, got %T", got)
	}
	if s.Value != "Hello World!" {
		t.Errorf("got %q, want %q", s.Value, "Hello World!")
	}
}

func TestArrayLiteralEval(t *testing.T) {
	got := testEval(t, "[1, 2 * 2, 3 + 3]")
	arr, ok := got.(*object.Array)
	if !ok {
		t.Fatalf("expected *object.Array, got %T", got)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
	testIntegerObject(t, arr.Elements[0], 1)
	testIntegerObject(t, arr.Elements[1], 4)
	testIntegerObject(t, arr.Elements[2], 6)
}

func TestArrayIndexExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"[1, 2, 3][0]", int64(1)},
		{"[1, 2, 3][1]", int64(2)},
		{"[1, 2, 3][2]", int64(3)},
		{"let i = 0; [1][i];", int64(1)},
		{"[1, 2, 3][1 + 1];", int64(3)},
		{"[1, 2, 3][3]", nil},
		{"[1, 2, 3][-1]", nil},
	}
	for _, tt := range tests {
		got := testEval(t, tt.input)
		if tt.want == nil {
			if got != object.Null {
				t.Errorf("input %q: got %s, want Null", tt.input, got.Inspect())
			}
			continue
		}
		testIntegerObject(t, got, tt.want.(int64))
	}
}

func TestBuiltinFunctions(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{`len("")`, int64(0)},
		{`len("four")`, int64(4)},
		{`len("hello world")`, int64(11)},
		{`len(1)`, "argument to `len` not supported, got INTEGER"},
		{`len("one", "two")`, "wrong number of arguments. got=2, want=1"},
		{`len([1, 2, 3])`, int64(3)},
		{`first([1, 2, 3])`, int64(1)},
		{`first([])`, nil},
		{`last([1, 2, 3])`, int64(3)},
		{`rest([1, 2, 3])`, []int64{2, 3}},
		{`push([1, 2], 3)`, []int64{1, 2, 3}},
	}
	for _, tt := range tests {
		got := testEval(t, tt.input)
		switch want := tt.want.(type) {
		case int64:
			testIntegerObject(t, got, want)
		case nil:
			if got != object.Null {
				t.Errorf("input %q: got %s, want Null", tt.input, got.Inspect())
			}
		case string:
			err, ok := got.(*object.Error)
			if !ok {
				t.Fatalf("input %q: expected *object.Error, got %T", tt.input, got)
			}
			if err.Message != want {
				t.Errorf("input %q: error = %q, want %q", tt.input, err.Message, want)
			}
		case []int64:
			arr, ok := got.(*object.Array)
			if !ok {
				t.Fatalf("input %q: expected *object.Array, got %T", tt.input, got)
			}
			if len(arr.Elements) != len(want) {
				t.Fatalf("input %q: got %d elements, want %d", tt.input, len(arr.Elements), len(want))
			}
			for i, w := range want {
				testIntegerObject(t, arr.Elements[i], w)
			}
		}
	}
}

func testIntegerObject(t *testing.T, obj object.Object, want int64) {
	t.Helper()
	i, ok := obj.(*object.Integer)
	if !ok {
		t.Fatalf("expected *object.Integer, got %T (%+v)", obj, obj)
	}
	if i.Value != want {
		t.Errorf("got %d, want %d", i.Value, want)
	}
}

func testBooleanObject(t *testing.T, obj object.Object, want bool) {
	t.Helper()
	b, ok := obj.(*object.Boolean)
	if !ok {
		t.Fatalf("expected *object.Boolean, got %T (%+v)", obj, obj)
	}
	if b.Value != want {
		t.Errorf("got %t, want %t", b.Value, want)
	}
}
