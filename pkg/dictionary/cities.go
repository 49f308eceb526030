package dictionary

// Cities is the built-in fallback list, ordered roughly by population.
var Cities = []string{
	"Москва", "Санкт-Петербург", "Новосибирск", "Екатеринбург", "Казань",
	"Нижний Новгород", "Челябинск", "Самара", "Омск", "Ростов-на-Дону",
	"Уфа", "Красноярск", "Воронеж", "Пермь", "Волгоград",
	"Краснодар", "Саратов", "Тюмень", "Тольятти", "Ижевск",
	"Барнаул", "Ульяновск", "Иркутск", "Хабаровск", "Ярославль",
	"Владивосток", "Махачкала", "Томск", "Оренбург", "Кемерово",
	"Новокузнецк", "Рязань", "Астрахань", "Набережные Челны", "Пенза",
	"Липецк", "Киров", "Чебоксары", "Калининград", "Тула",
	"Курск", "Ставрополь", "Сочи", "Улан-Удэ", "Тверь",
	"Магнитогорск", "Иваново", "Брянск", "Белгород", "Сургут",
	"Владимир", "Архангельск", "Чита", "Калуга", "Смоленск",
	"Волжский", "Курган", "Череповец", "Орёл", "Вологда",
	"Владикавказ", "Мурманск", "Саранск", "Якутск", "Тамбов",
	"Грозный", "Стерлитамак", "Кострома", "Петрозаводск", "Нижневартовск",
}

// RegionalCities is the structured set served by the mock data source.
var RegionalCities = []Entry{
	{ID: "1", Name: "Москва", Region: "Московская область"},
	{ID: "2", Name: "Санкт-Петербург", Region: "Ленинградская область"},
	{ID: "3", Name: "Новосибирск", Region: "Новосибирская область"},
	{ID: "4", Name: "Екатеринбург", Region: "Свердловская область"},
	{ID: "5", Name: "Казань", Region: "Республика Татарстан"},
	{ID: "6", Name: "Нижний Новгород", Region: "Нижегородская область"},
	{ID: "7", Name: "Челябинск", Region: "Челябинская область"},
	{ID: "8", Name: "Самара", Region: "Самарская область"},
	{ID: "9", Name: "Омск", Region: "Омская область"},
	{ID: "10", Name: "Ростов-на-Дону", Region: "Ростовская область"},
}
