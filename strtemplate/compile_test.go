package strtemplate_test

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/strtemplate/strtemplate"
)

func TestCompile_returns_template(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, strtemplate.Compile(""))
	assert.NotNil(t, strtemplate.CompilePtr(nil))
	assert.NotNil(t, strtemplate.Func(""))
}

func TestCompilePtr_nil_source(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.CompilePtr(nil)

	assert.Equal(t, "", tpl.Render(nil))
	assert.Empty(t, tpl.Fragments(nil))

	src := "Hello ${name}"
	assert.Equal(
		t,
		"Hello John",
		strtemplate.CompilePtr(&src).Render(
			strtemplate.Map{"name": "John"},
		),
	)
}

func TestRender_empty_template(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("")

	assert.Equal(t, "", tpl.Render(nil))
	assert.Equal(t, "", tpl.Render(strtemplate.Map{"name": "John"}))
	assert.Equal(t, "", tpl.Render(strtemplate.Map{"name": "John"}))
}

func TestRender_without_placeholders(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("Hello")

	assert.Equal(t, "Hello", tpl.Render(nil))
	assert.Equal(t, "Hello", tpl.Render(strtemplate.Map{"name": "John"}))
	assert.Equal(t, "Hello", tpl.Render(strtemplate.Map{"name": "John"}))
}

func TestRender_single_placeholder_no_text(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("${message}")

	assert.Equal(t, "", tpl.Render(nil))
	assert.Equal(
		t,
		"Hello World!",
		tpl.Render(strtemplate.Map{"message": "Hello World!"}),
	)
	assert.Equal(
		t,
		"Hello World!",
		tpl.Render(strtemplate.Map{"message": "Hello World!"}),
	)
}

func TestRender_one_placeholder_and_text(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("Hello, ${name}.")

	assert.Equal(t, "Hello, .", tpl.Render(nil))
	assert.Equal(t, "Hello, John.", tpl.Render(strtemplate.Map{"name": "John"}))
	assert.Equal(t, "Hello, John.", tpl.Render(strtemplate.Map{"name": "John"}))
	assert.Equal(t, "Hello, Jane.", tpl.Render(strtemplate.Map{"name": "Jane"}))
}

func TestRender_two_placeholders_trimmed_names(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile(
		"Hello ${ name }, please deposit $${ amount }.",
	)

	assert.Equal(t, "Hello , please deposit $.", tpl.Render(nil))
	assert.Equal(
		t,
		"Hello John, please deposit $.",
		tpl.Render(strtemplate.Map{"name": "John"}),
	)
	assert.Equal(
		t,
		"Hello John, please deposit $10.",
		tpl.Render(strtemplate.Map{"name": "John", "amount": 10}),
	)
	assert.Equal(
		t,
		"Hello Jane, please deposit $20.",
		tpl.Render(strtemplate.Map{"name": "Jane", "amount": 20}),
	)
}

func TestRender_numbered_placeholders(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("name: ${0}, amount: $${1}")

	assert.Equal(t, "name: , amount: $", tpl.Render(nil))
	assert.Equal(
		t,
		"name: John, amount: $10",
		tpl.Render(strtemplate.Seq{"John", 10}),
	)
	assert.Equal(
		t,
		"name: Jane, amount: $20",
		tpl.Render(strtemplate.ValuesOf([]any{"Jane", 20})),
	)
}

func TestRender_custom_tags(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile(
		"Hello <%=name%>, please deposit $<%=amount%>.",
		strtemplate.WithTags("<%=", "%>"),
	)

	assert.Equal(t, "Hello , please deposit $.", tpl.Render(nil))
	assert.Equal(
		t,
		"Hello John, please deposit $10.",
		tpl.Render(strtemplate.Map{"name": "John", "amount": 10}),
	)

	start, end := tpl.Tags()
	assert.Equal(t, "<%=", start)
	assert.Equal(t, "%>", end)
}

func TestRender_separate_tag_options(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile(
		"[[who]] says {hi}",
		strtemplate.WithStartTag("[["),
		strtemplate.WithEndTag("]]"),
	)

	assert.Equal(
		t,
		"Ann says {hi}",
		tpl.Render(strtemplate.Map{"who": "Ann", "hi": "x"}),
	)
}

func TestExecute_fragments_mode(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile(
		"Hello ${name}, please deposit $${amount}.",
		strtemplate.WithFragments(),
	)
	render := tpl.Func()

	tests := []struct {
		name   string
		values strtemplate.Values
		want   []any
	}{
		{
			name: "no values",
			want: []any{"Hello ", nil, ", please deposit $", nil, "."},
		},
		{
			name:   "one value",
			values: strtemplate.Map{"name": "John"},
			want:   []any{"Hello ", "John", ", please deposit $", nil, "."},
		},
		{
			name:   "raw values are not converted",
			values: strtemplate.Map{"name": "John", "amount": 10},
			want:   []any{"Hello ", "John", ", please deposit $", 10, "."},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := render(tt.values).([]any)
			require.True(t, ok)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("fragments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExecute_string_mode(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("Hi ${name}")

	assert.False(t, tpl.ReturnsFragments())
	assert.Equal(t, "Hi Bo", tpl.Execute(strtemplate.Map{"name": "Bo"}))
}

func TestRender_exceptional_formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		values strtemplate.Values
		want   string
	}{
		{source: "", want: ""},
		{source: "${", want: "${"},
		{source: "}", want: "}"},
		{source: "${}}", want: "}"},
		{source: "${}", values: strtemplate.Map{"": "Hello"}, want: ""},
		{source: "${name", want: "${name"},
		{source: "{name}", want: "{name}"},
		{source: "${name{}$", want: "$"},
		{source: "a}b${x}", values: strtemplate.Map{"x": 1}, want: "a}b1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			assert.Equal(
				t,
				tt.want,
				strtemplate.Compile(tt.source).Render(tt.values),
			)
		})
	}
}

func TestRender_dangling_start_after_match_keeps_tail(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("a${x}b${y")

	assert.Equal(t, "a1b${y", tpl.Render(strtemplate.Map{"x": 1, "y": 2}))
	assert.Equal(
		t,
		[]any{"a", nil, "b${y"},
		tpl.Fragments(nil),
	)
}

func TestRender_empty_placeholder_then_dangling_start(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "${", strtemplate.Compile("${}${").Render(nil))
}

func TestRender_repeated_name_fills_last_occurrence(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("${a} ${a}")

	assert.Equal(t, " x", tpl.Render(strtemplate.Map{"a": "x"}))
	assert.Equal(
		t,
		[]any{nil, " ", "x"},
		tpl.Fragments(strtemplate.Map{"a": "x"}),
	)
	assert.Equal(t, []string{"a"}, tpl.Placeholders())
}

func TestRender_zero_length_tags(t *testing.T) {
	t.Parallel()

	both := strtemplate.Compile("abc", strtemplate.WithTags("", ""))
	assert.Equal(t, "abc", both.Render(strtemplate.Map{"": "x"}))

	startless := strtemplate.Compile("a}b}", strtemplate.WithStartTag(""))
	assert.Equal(t, []string{"a", "b"}, startless.Placeholders())
	assert.Equal(
		t,
		"12",
		startless.Render(strtemplate.Map{"a": 1, "b": 2}),
	)
}

func TestRender_identical_tags(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("a%x%b", strtemplate.WithTags("%", "%"))

	assert.Equal(t, "aXb", tpl.Render(strtemplate.Map{"x": "X"}))
}

func TestRender_extra_and_missing_keys(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("${a}-${b}")

	assert.Equal(
		t,
		"1-",
		tpl.Render(strtemplate.Map{"a": 1, "zzz": "ignored"}),
	)
}

func TestRender_value_types(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("${v}")

	assert.Equal(t, "true", tpl.Render(strtemplate.Map{"v": true}))
	assert.Equal(t, "1.5", tpl.Render(strtemplate.Map{"v": 1.5}))
	assert.Equal(t, "", tpl.Render(strtemplate.Map{"v": nil}))
}

func TestFragments_does_not_mutate_template(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("Hello ${name}")

	got := tpl.Fragments(strtemplate.Map{"name": "John"})
	got[0] = "changed"

	assert.Equal(
		t,
		[]any{"Hello ", nil},
		strtemplate.CompiledFragmentsForTest(tpl),
	)
	assert.Equal(t, "Hello ", tpl.Render(nil))
}

func TestRender_nil_equals_empty_values(t *testing.T) {
	t.Parallel()

	sources := []string{
		"", "plain", "${a}", "x ${a} y ${b} z", "${", "${}}", "${0}${1}",
	}

	for _, src := range sources {
		tpl := strtemplate.Compile(src)

		assert.Equal(t, tpl.Render(strtemplate.Map{}), tpl.Render(nil), src)
		assert.Equal(t, tpl.Render(strtemplate.Seq{}), tpl.Render(nil), src)
	}
}

func TestRender_concurrent_use(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("Hello ${name}, you are ${age}.")

	const workers = 64

	results := make([]string, workers)

	var wg sync.WaitGroup

	for idx := 0; idx < workers; idx++ {
		wg.Add(1)

		go func(idx int) {
			defer wg.Done()

			results[idx] = tpl.Render(strtemplate.Map{
				"name": fmt.Sprintf("user%d", idx),
				"age":  idx,
			})
		}(idx)
	}

	wg.Wait()

	for idx, got := range results {
		assert.Equal(
			t,
			fmt.Sprintf("Hello user%d, you are %d.", idx, idx),
			got,
		)
	}
}

func TestRenderTo_writes_output(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("Hello ${name}!")

	var buf bytes.Buffer

	n, err := tpl.RenderTo(&buf, strtemplate.Map{"name": "World"})

	require.NoError(t, err)
	assert.Equal(t, int64(len("Hello World!")), n)
	assert.Equal(t, "Hello World!", buf.String())
}

func TestTemplate_zero_value(t *testing.T) {
	t.Parallel()

	var tpl strtemplate.Template

	assert.Equal(t, "", tpl.Render(strtemplate.Map{"a": 1}))
	assert.Empty(t, tpl.Placeholders())
}

func TestTemplate_source(t *testing.T) {
	t.Parallel()

	tpl := strtemplate.Compile("${b} ${a} ${b}")

	assert.Equal(t, "${b} ${a} ${b}", tpl.Source())
	assert.Equal(t, []string{"a", "b"}, tpl.Placeholders())
}

func TestRender_matches_fasttemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		values map[string]any
	}{
		{source: "Hello ${name}!", values: map[string]any{"name": "World"}},
		{source: "${a}${b}", values: map[string]any{"a": "x"}},
		{source: "no tags here", values: map[string]any{"key": "val"}},
		{source: "${key}", values: map[string]any{"key": ""}},
		{source: "$${x}$", values: map[string]any{"x": "5"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			want := fasttemplate.ExecuteString(
				tt.source, "${", "}", tt.values,
			)

			assert.Equal(
				t,
				want,
				strtemplate.Compile(tt.source).Render(
					strtemplate.Map(tt.values),
				),
			)
		})
	}
}

func FuzzRender_matches_fasttemplate(f *testing.F) {
	f.Add("Hello ", "name", "!", "World")
	f.Add("", "a", "", "x")
	f.Add("amount ", "0", " due", "")
	f.Add("amount: ", "amt", ".", "10")

	f.Fuzz(func(
		t *testing.T,
		head string,
		name string,
		tail string,
		val string,
	) {
		// fasttemplate neither trims names nor tolerates
		// stray delimiters, so only compare well-formed
		// templates.
		if strings.ContainsAny(head+tail+name, "${}") ||
			name == "" ||
			strings.TrimSpace(name) != name {
			return
		}

		src := head + "${" + name + "}" + tail
		values := map[string]any{name: val}

		want := fasttemplate.ExecuteString(src, "${", "}", values)
		got := strtemplate.Compile(src).Render(strtemplate.Map(values))

		if got != want {
			t.Fatalf("render(%q) = %q, fasttemplate = %q", src, got, want)
		}
	})
}

func FuzzCompile(f *testing.F) {
	f.Add("Hello ${name}!", "name", "World")
	f.Add("${", "k", "v")
	f.Add("}", "k", "v")
	f.Add("${}}", "", "v")
	f.Add("${name{}$", "name", "v")
	f.Add("", "key", "val")

	f.Fuzz(func(
		t *testing.T,
		src string,
		key string,
		val string,
	) {
		tpl := strtemplate.Compile(src)
		values := strtemplate.Map{key: val}

		first := tpl.Render(values)
		if second := tpl.Render(values); first != second {
			t.Fatalf("render not idempotent: %q vs %q", first, second)
		}

		if tpl.Render(nil) != tpl.Render(strtemplate.Map{}) {
			t.Fatalf("nil and empty values differ for %q", src)
		}

		if !strings.Contains(src, "${") && first != src {
			t.Fatalf("template without start tag changed: %q -> %q", src, first)
		}
	})
}
