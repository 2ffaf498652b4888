package catalog

func init() {
	if err := validateStreams(seedStreams); err != nil {
		panic(err)
	}
	c = buildIndex(seedStreams)
}

var seedStreams = []Stream{
	{
		ID:          "cse",
		Name:        "Computer Science & Engineering",
		Description: "Explore foundational and advanced topics in computer science, from algorithms to artificial intelligence.",
		Subjects: []Subject{
			{ID: "data-structures-and-algorithms", Name: "Data Structures & Algorithms", Description: "Master the building blocks of efficient software. Learn about arrays, linked lists, trees, graphs, and essential algorithms."},
			{ID: "operating-systems", Name: "Operating Systems", Description: "Understand how computer hardware and software interact. Dive into processes, memory management, and file systems."},
			{ID: "database-management-systems", Name: "Database Management Systems", Description: "Learn to design, query, and manage databases. Explore SQL, normalization, and data modeling."},
			{ID: "artificial-intelligence", Name: "Artificial Intelligence", Description: "Discover the fundamentals of AI, including machine learning, neural networks, and natural language processing."},
		},
	},
	{
		ID:          "ece",
		Name:        "Electronics & Communication",
		Description: "Delve into the world of electronics, from analog circuits to digital signal processing and communication systems.",
		Subjects: []Subject{
			{ID: "analog-electronics", Name: "Analog Electronics", Description: "Explore the fundamentals of electronic circuits, including transistors, amplifiers, and op-amps."},
			{ID: "digital-logic-design", Name: "Digital Logic Design", Description: "Learn the principles of digital systems, including logic gates, flip-flops, and state machines."},
			{ID: "signals-and-systems", Name: "Signals and Systems", Description: "Understand the mathematical foundation for analyzing signals and the systems that process them."},
			{ID: "communication-systems", Name: "Communication Systems", Description: "Discover how information is transmitted and received, from analog modulation to modern digital communication."},
		},
	},
	{
		ID:          "eee",
		Name:        "Electrical & Electronics",
		Description: "Focus on electrical machinery, power systems, and control systems.",
		Subjects: []Subject{
			{ID: "electric-circuits", Name: "Electric Circuits", Description: "Analyze DC and AC circuits, network theorems, and transient analysis."},
			{ID: "power-systems", Name: "Power Systems", Description: "Learn about power generation, transmission, distribution, and protection."},
			{ID: "control-systems", Name: "Control Systems", Description: "Study the modeling of systems, time-domain and frequency-domain analysis, and controller design."},
			{ID: "electrical-machines", Name: "Electrical Machines", Description: "Understand the principles of transformers, DC motors, and AC machines."},
		},
	},
	{
		ID:          "mech",
		Name:        "Mechanical Engineering",
		Description: "Explore the principles of mechanics, thermodynamics, and materials science.",
		Subjects: []Subject{
			{ID: "thermodynamics", Name: "Thermodynamics", Description: "Study the laws of energy conversion, heat transfer, and properties of substances."},
			{ID: "fluid-mechanics", Name: "Fluid Mechanics", Description: "Analyze fluid statics, dynamics, and the principles of flow in pipes and channels."},
			{ID: "strength-of-materials", Name: "Strength of Materials", Description: "Learn about stress, strain, and deformation in solid materials under various loads."},
			{ID: "machine-design", Name: "Machine Design", Description: "Apply engineering principles to design and analyze machine components."},
		},
	},
	{
		ID:          "bba",
		Name:        "Business Administration (BBA)",
		Description: "Build foundational knowledge in business management, finance, and marketing.",
		Subjects: []Subject{
			{ID: "principles-of-management", Name: "Principles of Management", Description: "Learn the core functions of management: planning, organizing, leading, and controlling."},
			{ID: "financial-accounting", Name: "Financial Accounting", Description: "Understand how to record, summarize, and report financial transactions."},
			{ID: "marketing-management", Name: "Marketing Management", Description: "Explore strategies for product pricing, promotion, and distribution to meet customer needs."},
			{ID: "business-law", Name: "Business Law", Description: "Grasp the legal framework governing business activities, including contracts and corporate law."},
		},
	},
	{
		ID:          "mba",
		Name:        "Business Administration (MBA)",
		Description: "Develop advanced skills in strategic management, corporate finance, and global business.",
		Subjects: []Subject{
			{ID: "strategic-management", Name: "Strategic Management", Description: "Learn to formulate and implement strategies to achieve a competitive advantage."},
			{ID: "corporate-finance", Name: "Corporate Finance", Description: "Master investment analysis, capital budgeting, and financial risk management."},
			{ID: "operations-management", Name: "Operations Management", Description: "Analyze and optimize the processes used to produce and deliver goods and services."},
			{ID: "global-business-strategy", Name: "Global Business Strategy", Description: "Understand the challenges and opportunities of operating in a globalized market."},
		},
	},
}
