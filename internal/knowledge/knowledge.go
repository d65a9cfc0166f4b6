// Copyright 2025 Farmer Super App Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package knowledge serves the static farming reference library in English,
// Hindi, and Marathi: cropping seasons, common pests, government schemes,
// soil testing labs, and soil health practices.
package knowledge

// Season describes a cropping season with its crops and care guidance.
type Season struct {
	Season string `json:"season"`
	Crops  string `json:"crops"`
	Care   string `json:"care"`
}

// Pest describes a common pest, its symptoms, and treatment.
type Pest struct {
	Pest     string `json:"pest"`
	Symptoms string `json:"symptoms"`
	Cure     string `json:"cure"`
}

// Scheme describes a government support scheme for farmers.
type Scheme struct {
	Name        string `json:"name"`
	Benefit     string `json:"benefit"`
	Eligibility string `json:"eligibility"`
}

// SoilLab is a soil testing center with contact details.
type SoilLab struct {
	Center  string `json:"center"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}

// SoilTip is a titled soil health practice.
type SoilTip struct {
	Title string `json:"title"`
	Tip   string `json:"tip"`
}

// Library holds one language's edition of the reference content.
type Library struct {
	Seasons    []Season  `json:"seasons"`
	Pests      []Pest    `json:"pests"`
	Schemes    []Scheme  `json:"schemes"`
	SoilLabs   []SoilLab `json:"soil_labs"`
	SoilHealth []SoilTip `json:"soil_health"`
}

// ForLanguage returns the library in the requested language, falling back to
// English when the language has no edition.
func ForLanguage(language string) Library {
	if lib, ok := libraries[language]; ok {
		return lib
	}
	return libraries["English"]
}

// Languages lists the editions available.
func Languages() []string {
	return []string{"English", "Hindi", "Marathi"}
}

var libraries = map[string]Library{
	"English": {
		Seasons: []Season{
			{Season: "Kharif (Monsoon)", Crops: "Rice, Maize, Cotton, Soyabean", Care: "Ensure proper drainage to prevent waterlogging during heavy rains."},
			{Season: "Rabi (Winter)", Crops: "Wheat, Mustard, Barley, Peas", Care: "Requires timely irrigation and frost protection in North India."},
			{Season: "Zaid (Summer)", Crops: "Watermelon, Cucumber, Fodder", Care: "Needs frequent irrigation due to high heat."},
		},
		Pests: []Pest{
			{Pest: "Stem Borer (Rice)", Symptoms: "Dead hearts in central shoots.", Cure: "Use Neem oil spray or installing light traps."},
			{Pest: "Aphids (Wheat)", Symptoms: "Yellowing of leaves, sticky honeydew.", Cure: "Spray soap solution or introduce ladybugs."},
			{Pest: "Bollworm (Cotton)", Symptoms: "Holes in bolls, dropping of flowers.", Cure: "Use Pheromone traps and resistant BT varieties."},
			{Pest: "Fall Armyworm (Maize)", Symptoms: "Large ragged holes in leaves, sawdust-like frass.", Cure: "Apply Emamectin Benzoate or Spinetoram early."},
			{Pest: "Whitefly (Vegetables/Cotton)", Symptoms: "Yellowing leaves, sooty mold fungus.", Cure: "Yellow sticky traps and Neem oil 5%."},
			{Pest: "Termites (General)", Symptoms: "Damage to roots, plants drying up.", Cure: "Treat soil with Chlorpyriphos before sowing."},
		},
		Schemes: []Scheme{
			{Name: "PM-KISAN", Benefit: "₹6,000 per year income support.", Eligibility: "All landholding farmer families."},
			{Name: "Pradhan Mantri Fasal Bima Yojana (PMFBY)", Benefit: "Crop insurance against natural calamities.", Eligibility: "Farmers with notified crops in notified areas."},
			{Name: "Kisan Credit Card (KCC)", Benefit: "Low-interest short-term credit.", Eligibility: "Farmers, tenant farmers, and sharecroppers."},
			{Name: "Soil Health Card Scheme", Benefit: "Free soil testing and nutrient recommendations.", Eligibility: "All farmers once every 2 years."},
			{Name: "PM Krishi Sinchai Yojana (PMKSY)", Benefit: "Subsidy for Drip/Sprinkler irrigation systems.", Eligibility: "All farmers (priority for small/marginal)."},
			{Name: "Paramparagat Krishi Vikas Yojana (PKVY)", Benefit: "₹50,000/hectare for Organic Farming.", Eligibility: "Farmers forming clusters for organic farming."},
		},
		SoilLabs: []SoilLab{
			{Center: "District Soil Testing Lab, Nagpur", Address: "Civil Lines, Nagpur, Maharashtra", Contact: "0712-2560000"},
			{Center: "Krishi Vigyan Kendra (KVK)", Address: "Near APMC Market, Amravati", Contact: "0721-2550123"},
			{Center: "Regional Soil Lab", Address: "Agriculture College Campus, Pune", Contact: "020-25537890"},
			{Center: "IARI Pusa Soil Lab", Address: "Pusa Campus, New Delhi", Contact: "011-25841234"},
			{Center: "KVK Baramati", Address: "Malegaon Colony, Baramati", Contact: "02112-255207"},
		},
		SoilHealth: []SoilTip{
			{Title: "Crop Rotation", Tip: "Alternate different crops (e.g., Legumes after Cereals) to naturally replenish Nitrogen and break pest cycles."},
			{Title: "Organic Carbon Enrichment", Tip: "Incorporate FYM (Farm Yard Manure), Vermicompost, or Green Manure (Dhaincha/Sunhemp) to improve water retention."},
			{Title: "Mulching", Tip: "Cover soil with straw or plastic mulch to reduce evaporation, suppress weeds, and regulate soil temperature."},
			{Title: "pH Management", Tip: "For Acidic soil (pH < 6), add Lime. For Alkaline soil (pH > 8), add Gypsum to neutralize."},
			{Title: "Bio-Fertilizers", Tip: "Use Rhizobium, Azotobacter, and PSU cultures to reduce chemical fertilizer dependency."},
		},
	},
	"Hindi": {
		Seasons: []Season{
			{Season: "खरीफ (मानसून)", Crops: "चावल, मक्का, कपास, सोयाबीन", Care: "भारी बारिश के दौरान जलभराव को रोकने के लिए उचित जल निकासी सुनिश्चित करें।"},
			{Season: "रबी (सर्दी)", Crops: "गेहूं, सरसों, जौ, मटर", Care: "उत्तर भारत में समय पर सिंचाई और पाले से सुरक्षा की आवश्यकता होती है।"},
			{Season: "जायद (गर्मी)", Crops: "तरबूज, खीरा, चारा", Care: "तेज गर्मी के कारण बार-बार सिंचाई की जरूरत होती है।"},
		},
		Pests: []Pest{
			{Pest: "तना छेदक (चावल)", Symptoms: "केंद्रीय अंकुर सूख जाते हैं (डेड हार्ट)।", Cure: "नीम के तेल का छिड़काव करें या प्रकाश जाल (Light traps) लगाएं।"},
			{Pest: "एफिड्स/माहू (गेहूं)", Symptoms: "पत्तियां पीली पड़ना, चिपचिपा पदार्थ।", Cure: "साबुन के घोल का छिड़काव करें या लेडीबग्स छोड़ें।"},
			{Pest: "बॉलवर्म (कपास)", Symptoms: "टिंडों में छेद, फूलों का गिरना।", Cure: "फेरोमोन ट्रैप और प्रतिरोधी बीटी किस्मों का उपयोग करें।"},
			{Pest: "फॉल आर्मीवर्म (मक्का)", Symptoms: "पत्तियों में बड़े फटे हुए छेद, बुरादा जैसा मल।", Cure: "शुरुआत में एमेमेक्टिन बेंजोएट या स्पिनेटोरम का प्रयोग करें।"},
			{Pest: "सफेद मक्खी (सब्जियां/कपास)", Symptoms: "पत्तियां पीली होना, काला फफूंद।", Cure: "पीले चिपचिपे जाल और नीम तेल 5% का प्रयोग करें।"},
			{Pest: "दीमक (सामान्य)", Symptoms: "जड़ों को नुकसान, पौधे सूख रहे हैं।", Cure: "बुवाई से पहले मिट्टी में क्लोरपाइरीफॉस से उपचार करें।"},
		},
		Schemes: []Scheme{
			{Name: "पीएम-किसान", Benefit: "₹6,000 प्रति वर्ष आय सहायता।", Eligibility: "सभी भूमिधारक किसान परिवार।"},
			{Name: "प्रधान मंत्री फसल बीमा योजना (PMFBY)", Benefit: "प्राकृतिक आपदाओं के खिलाफ फसल बीमा।", Eligibility: "अधिसूचित क्षेत्रों में अधिसूचित फसलों वाले किसान।"},
			{Name: "किसान क्रेडिट कार्ड (KCC)", Benefit: "कम ब्याज पर अल्पकालिक ऋण।", Eligibility: "किसान, बटाईदार और साझा किसान।"},
			{Name: "मृदा स्वास्थ्य कार्ड योजना", Benefit: "निःशुल्क मिट्टी परीक्षण और पोषक तत्व सिफारिशें।", Eligibility: "सभी किसान (हर 2 साल में एक बार)।"},
			{Name: "पीएम कृषि सिंचाई योजना (PMKSY)", Benefit: "ड्रिप/स्प्रिंकलर सिंचाई प्रणाली के लिए सब्सिडी।", Eligibility: "सभी किसान (छोटे/सीमांत के लिए प्राथमिकता)।"},
			{Name: "परंपरागत कृषि विकास योजना (PKVY)", Benefit: "जैविक खेती के लिए ₹50,000/हेक्टेयर।", Eligibility: "जैविक खेती के लिए समूह बनाने वाले किसान।"},
		},
		SoilLabs: []SoilLab{
			{Center: "जिला मृदा परीक्षण प्रयोगशाला, नागपुर", Address: "सिविल लाइन्स, नागपुर, महाराष्ट्र", Contact: "0712-2560000"},
			{Center: "कृषि विज्ञान केंद्र (KVK)", Address: "APMC मार्केट के पास, अमरावती", Contact: "0721-2550123"},
			{Center: "क्षेत्रीय मृदा प्रयोगशाला", Address: "कृषि कॉलेज परिसर, पुणे", Contact: "020-25537890"},
			{Center: "IARI पूसा मृदा प्रयोगशाला", Address: "पूसा परिसर, नई दिल्ली", Contact: "011-25841234"},
			{Center: "KVK बारामती", Address: "मालेगांव कॉलोनी, बारामती", Contact: "02112-255207"},
		},
		SoilHealth: []SoilTip{
			{Title: "फसल चक्र (Crop Rotation)", Tip: "पोषक तत्वों की भरपाई के लिए अलग-अलग फसलें (जैसे अनाज के बाद दालें) बदल-बदल कर लगाएं।"},
			{Title: "जैविक कार्बन संवर्धन", Tip: "जल धारण क्षमता बढ़ाने के लिए गोबर की खाद, वर्मीकम्पोस्ट या हरी खाद (ढैंचा/सनहेम्प) मिलाएं।"},
			{Title: "मल्चिंग (Mulching)", Tip: "वाष्पीकरण को कम करने और खरपतवार को रोकने के लिए मिट्टी को पुआल या प्लास्टिक से ढक दें।"},
			{Title: "pH प्रबंधन", Tip: "अम्लीय मिट्टी (pH < 6) के लिए चूना डालें। क्षारीय मिट्टी (pH > 8) के लिए जिप्सम डालें।"},
			{Title: "जैव-उर्वरक", Tip: "रासायनिक उर्वरकों पर निर्भरता कम करने के लिए राइजोबियम, एज़ोटोबैक्टर और पीएसबी का प्रयोग करें।"},
		},
	},
	"Marathi": {
		Seasons: []Season{
			{Season: "खरीप (पावसाळा)", Crops: "तांदूळ, मक्का, कापूस, सोयाबीन", Care: "मुसळधार पावसात पाणी साचून राहू नये यासाठी योग्य निचरा करा."},
			{Season: "रब्बी (हिवाळा)", Crops: "गहू, मोहरी, बार्ली, वाटाणा", Care: "वेळेवर सिंचन आणि दव/धुक्यापासून संरक्षण आवश्यक आहे."},
			{Season: "उन्हाळी (Zaid)", Crops: "कलिंगड, काकडी, चारा पिके", Care: "जास्त उष्णतेमुळे वारंवार पाणी देण्याची गरज असते."},
		},
		Pests: []Pest{
			{Pest: "खोडकिडा (भात)", Symptoms: "मध्यवर्ती शेंडा वाळतो (Dead hearts).", Cure: "निंबोळी तेलाची फवारणी करा किंवा प्रकाश सापळे लावा."},
			{Pest: "मावा/तूडतुडे (गहू)", Symptoms: "पाने पिवळी पडणे, चिकट द्रव्य.", Cure: "साबण पाण्याचे द्रावण फवारा किंवा लेडीबग्स (ढालकिडा) सोडा."},
			{Pest: "बोंडअळी (कापूस)", Symptoms: "बोंडांना छिद्रे, फुले गळणे.", Cure: "फेरोमोन सापळे (कामगंध) आणि बीटी वाणांचा वापर करा."},
			{Pest: "लष्करी अळी (मक्का)", Symptoms: "पानांवर मोठी छिद्रे, भुश्यासारखी विष्ठा.", Cure: "सुरुवातीला इमामॅक्टिन बेंझोएट किंवा स्पिनेटोरम वापरा."},
			{Pest: "पांढरी माशी (भाजीपाला)", Symptoms: "पाने पिवळी पडणे, काळी बुरशी.", Cure: "पिवळे चिकट सापळे आणि निंबोळी तेल 5% वापरा."},
			{Pest: "वाळवी (दीमक)", Symptoms: "मुळांना नुकसान, झाडे वाळणे.", Cure: "पेरणीपूर्वी जमिनीत क्लोरपायरीफॉस टाका."},
		},
		Schemes: []Scheme{
			{Name: "पीएम-किसान", Benefit: "वर्षाला ₹6,000 आर्थिक मदत.", Eligibility: "सर्व जमीनधारक शेतकरी कुटुंब."},
			{Name: "प्रधानमंत्री पीक विमा योजना (PMFBY)", Benefit: "नैसर्गिक आपत्तींपासून पिकांचे संरक्षण.", Eligibility: "अधिसूचित पिके घेणारे शेतकरी."},
			{Name: "किसान क्रेडिट कार्ड (KCC)", Benefit: "कमी व्याजावर अल्पमुदतीचे कर्ज.", Eligibility: "शेतकरी, बटाईदार आणि संयुक्त शेतकरी."},
			{Name: "मृदा आरोग्य जोपासना", Benefit: "मोफत माती परीक्षण आणि खत शिफारसी.", Eligibility: "सर्व शेतकरी (दर 2 वर्षांनी एकदा)."},
			{Name: "पीएम कृषी सिंचन योजना (PMKSY)", Benefit: "ठिबक/तुषार सिंचनासाठी सबसिडी.", Eligibility: "सर्व शेतकरी (लहान/अल्पभूधारकांना प्राधान्य)."},
			{Name: "परंपरागत कृषी विकास योजना (PKVY)", Benefit: "सेंद्रिय शेतीसाठी ₹50,000/हेक्टर.", Eligibility: "सेंद्रिय शेतीसाठी गट तयार करणारे शेतकरी."},
		},
		SoilLabs: []SoilLab{
			{Center: "जिल्हा मृदा चाचणी प्रयोगशाळा, नागपूर", Address: "सिव्हिल लाईन्स, नागपूर, महाराष्ट्र", Contact: "0712-2560000"},
			{Center: "कृषी विज्ञान केंद्र (KVK)", Address: "APMC मार्केट जवळ, अमरावती", Contact: "0721-2550123"},
			{Center: "विभागीय माती प्रयोगशाळा", Address: "कृषी महाविद्यालय परिसर, पुणे", Contact: "020-25537890"},
			{Center: "IARI पूसा माती लॅब", Address: "पूसा कॅम्पस, नवी दिल्ली", Contact: "011-25841234"},
			{Center: "केव्हीके बारामती", Address: "माळेगाव कॉलनी, बारामती", Contact: "02112-255207"},
		},
		SoilHealth: []SoilTip{
			{Title: "पीक फेरपालट (Crop Rotation)", Tip: "जमिनीचा पोत सुधारण्यासाठी पिकांची (उदा. धान्यानंतर कडधान्य) आलटून पालटून लागवड करा."},
			{Title: "सेंद्रिय कर्ब", Tip: "शेतकरी खत (FYM), गांडूळ खत किंवा हिरवळीचे खत (धैंचा/ताग) जमिनीत मिसळा."},
			{Title: "आच्छादन (Mulching)", Tip: "बाष्पीभवन कमी करण्यासाठी आणि तण नियंत्रणासाठी जमिनीवर पेंढा किंवा प्लास्टिक आच्छादन वापरा."},
			{Title: "pH व्यवस्थापन", Tip: "आम्लधर्मी (pH < 6) जमिनीसाठी चुना वापरा. विम्लधर्मी (pH > 8) जमिनीसाठी जिप्सम वापरा."},
			{Title: "जैविक खते", Tip: "रासायनिक खतांचा वापर कमी करण्यासाठी रायझोबियम, ॲझोटोबॅक्टर यांसारख्या जिवाणू खतांचा वापर करा."},
		},
	},
}
