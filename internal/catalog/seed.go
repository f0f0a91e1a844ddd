package catalog

func init() {
	c = buildCatalog(seedSubjects)
}

var seedSubjects = []Subject{
	{
		Name: "Mathematics",
		Categories: []Category{
			{Name: "Number", Topics: []Topic{
				{"Addition and Subtraction", "Addition/Subtraction"},
				{"Multiplication", "Multiplication"},
				{"Fractions", "Fractions"},
				{"Place Value", "Place Value"},
			}},
			{Name: "Shape and Measure", Topics: []Topic{
				{"Shapes and Geometry", "Shapes & Geometry"},
				{"Measuring Length", "Measuring Length"},
				{"Telling Time", "Telling Time"},
				{"Patterns", "Patterns"},
			}},
		},
	},
	{
		Name: "Reading",
		Categories: []Category{
			{Name: "Foundations", Topics: []Topic{
				{"Phonics and Letter Sounds", "Phonics"},
				{"Building Vocabulary", "Vocabulary"},
				{"Sight Words", "Sight Words"},
				{"Reading Aloud", "Reading Aloud"},
			}},
			{Name: "Understanding", Topics: []Topic{
				{"Reading Comprehension", "Reading Comprehension"},
				{"Storytelling", "Storytelling"},
				{"Main Idea and Details", "Main Idea"},
				{"Asking Questions About a Text", "Asking Questions"},
			}},
		},
	},
	{
		Name: "Science",
		Categories: []Category{
			{Name: "Living Things", Topics: []Topic{
				{"Plants and Animals", "Plants & Animals"},
				{"The Human Body", "Human Body"},
				{"Healthy Eating", "Healthy Eating"},
				{"Habitats", "Habitats"},
			}},
			{Name: "Earth and Physical", Topics: []Topic{
				{"Water Cycle", "Water Cycle"},
				{"Simple Machines", "Simple Machines"},
				{"Weather and Seasons", "Weather"},
				{"Light and Shadows", "Light & Shadows"},
			}},
		},
	},
	{
		Name: "Social Studies",
		Categories: []Category{
			{Name: "People", Topics: []Topic{
				{"Community Helpers", "Community Helpers"},
				{"Family and Culture", "Family & Culture"},
				{"Rights and Responsibilities", "Rights & Duties"},
				{"Traditions and Festivals", "Traditions"},
			}},
			{Name: "Places", Topics: []Topic{
				{"Maps and Directions", "Maps & Directions"},
				{"Caring for Environment", "Environment"},
				{"Our Village or Town", "Our Town"},
				{"Landforms and Water Bodies", "Landforms"},
			}},
		},
	},
	{
		Name: "Arts",
		Categories: []Category{
			{Name: "Visual", Topics: []Topic{
				{"Drawing and Sketching", "Drawing"},
				{"Simple Crafts", "Crafts"},
				{"Colors and Mixing", "Colors"},
				{"Patterns in Nature", "Nature Patterns"},
			}},
			{Name: "Performing", Topics: []Topic{
				{"Music and Rhythm", "Music & Rhythm"},
				{"Drama and Role Play", "Drama/Role Play"},
				{"Traditional Songs", "Songs"},
				{"Dance and Movement", "Dance"},
			}},
		},
	},
	{
		Name: "Language",
		Categories: []Category{
			{Name: "Speaking", Topics: []Topic{
				{"Speaking Practice", "Speaking Practice"},
				{"Greetings and Introductions", "Greetings"},
				{"Describing Things", "Describing"},
				{"Listening Skills", "Listening"},
			}},
			{Name: "Writing", Topics: []Topic{
				{"Building Sentences", "Sentence Building"},
				{"Writing Short Stories", "Writing Stories"},
				{"Basic Grammar", "Grammar Basics"},
				{"Letter Writing", "Letter Writing"},
			}},
		},
	},
}
