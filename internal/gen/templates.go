package gen

import (
	"text/template"
)

// banner opens every fully generated artifact.
const banner = `/*                                                      */
/*  ______       _                                      */
/* |  ____|     (_)                                     */
/* | |__   _ __  _                                      */
/* |  __| | '_ \| |   THIS FILE IS AUTO-GENERATED       */
/* | |____| |_) | |   manual changes won't be saved     */
/* |______| .__/|_|                                     */
/*        | |                                           */
/*        |_|                                           */
/*                                                      */
`

// classTailTemplate renders the owned part of a class body after its
// enums and nested classes. Member lines are indented one level.
var classTailTemplate = template.Must(template.New("class_tail").Parse(`public:
    constexpr static MetaTypeID TypeID{{"{"}}{{.TypeID}}};

    enum {{.Name}}_PIDs
    {
{{- range .Properties}}
        PID_{{.Name}} = {{.ID}},
{{- end}}
        PID_COUNT = {{len .Properties}}
    };
{{- if .Callbacks}}

protected:
{{- range .Callbacks}}
{{- if .GetterDecl}}
    {{.GetterDecl}}
{{- end}}
{{- if .SetterDecl}}
    {{.SetterDecl}}
{{- end}}
{{- end}}
{{- end}}
{{- if .Fields}}

protected:
{{- range .Fields}}
    {{.FieldDecl}}
{{- end}}
{{- end}}

`))

// bundleTemplate renders the macro body before line continuations are added.
var bundleTemplate = template.Must(template.New("bundle").Parse(`#define {{.Macro}}()
public:
using super = {{.Parent}};

static MetaClass EmitMetaClass();

const MetaClass& GetMetaClass() const override
{
    super::GetMetaClass();
    return ClassRegistry_GetMetaClass<{{.Qualified}}>();
}

epiBool Is(MetaTypeID rhs) const override
{
    return rhs == {{.Qualified}}::TypeID || super::Is(rhs);
}

void Serialization(json_t& json) override;
void Deserialization(const json_t& json) override;
{{- if .Properties}}
{{range .Properties}}
{{.Getter}}
{{- if .Setter}}
{{.Setter}}
{{- end}}
{{- end}}
{{- end}}

enum {{.Name}}_PIDXs
{
{{- range .Properties}}
    PIDX_{{.Name}} = {{.Index}},
{{- end}}
    PIDX_COUNT = {{len .Properties}}
};
{{- if .Callbacks}}

private:
{{- range .Callbacks}}
{{- if .GetterFuncPtr}}
{{.GetterFuncPtr}}
{{- end}}
{{- if .SetterFuncPtr}}
{{.SetterFuncPtr}}
{{- end}}
{{- end}}
{{- end}}
`))

// definitionTemplate renders the serialization methods and the metadata factory.
var definitionTemplate = template.Must(template.New("definition").Parse(`void {{.Qualified}}::Serialization(json_t& json)
{
    super::Serialization(json);
{{- if .Serialized}}
{{range .Serialized}}
    epiSerialize({{.Name}}, json);
{{- end}}
{{- end}}
}

void {{.Qualified}}::Deserialization(const json_t& json)
{
    super::Deserialization(json);
{{- if .Serialized}}
{{range .Serialized}}
    epiDeserialize({{.Name}}, json);
{{- end}}
{{- end}}
}

MetaClass {{.Qualified}}::EmitMetaClass()
{
    MetaClassData data;
{{range .Properties}}
    {
        MetaProperty m = epiMetaProperty(
            /* Name */ "{{.Label}}",
            /* PtrRead */ {{.ReadLocator}},
            /* PtrWrite */ {{.WriteLocator}},
            /* Flags */ {{.Flags}},
            /* typeID */ {{.TypeTag}},
            /* nestedTypeID */ {{.NestedTag}}
        );
        data.AddProperty(epiHashCompileTime({{.Name}}), std::move(m));
    }
{{end}}
    return MetaClass(std::move(data), epiHashCompileTime({{.Qualified}}), epiHashCompileTime({{.Parent}}), sizeof({{.Qualified}}), "{{.Qualified}}");
}
`))
