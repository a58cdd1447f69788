package sink_test

import (
	"fmt"

	"github.com/matzehuels/resumake/pkg/layout"
	"github.com/matzehuels/resumake/pkg/render/sink"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

func ExampleRenderJSON() {
	p := template.MustLookup(template.ProfileTwoColumn)
	v := layout.BuildView(p, []section.Section{
		{ID: "n", Type: section.TypeName, Title: "Full Name", Content: "Jane Doe"},
		{ID: "s", Type: section.TypeSkills, Title: "Skills"},
	})
	data, _ := sink.RenderJSON(v)
	fmt.Println(string(data))
	// Output:
	// {
	//   "template": "profile-two-column",
	//   "family": "profile-two-column",
	//   "header": [
	//     {
	//       "id": "n",
	//       "type": "name",
	//       "title": "Full Name"
	//     }
	//   ],
	//   "regions": [
	//     {
	//       "id": "left",
	//       "sections": [
	//         {
	//           "id": "s",
	//           "type": "skills",
	//           "title": "Skills"
	//         }
	//       ]
	//     },
	//     {
	//       "id": "right",
	//       "sections": []
	//     }
	//   ]
	// }
}
